package template

const nodeDockerfile = `# Use the official Node.js image as the base image
FROM {{.Image}}

# Set the working directory in the container
WORKDIR /app

# Copy the dependencies file to the working directory
COPY package.json .

# Install all the dependencies
RUN npm install pm2 -g && npm install

# Copy the content of the server folder to the working directory
COPY . .

# Expose the port the app runs in
EXPOSE 3010

# Command to run the server
CMD ["npm", "run", "start:dev"]
`

const nodeCompose = `version: "3.8"
services:
  app:
    build:
      context: ./
      dockerfile: Dockerfile
    image: {{.Name}}
    tty: true
    restart: unless-stopped
    container_name: {{.Name}}
    working_dir: /app/
    volumes:
      - ./:/app
    networks:
      - {{.Name}}
    ports:
      - "3010:3010"
    depends_on:
      - db
      - redis

  db:
    image: mysql:8.0
    container_name: {{.Name}}_db
    restart: unless-stopped
    command: --max_allowed_packet=32505856
    environment:
      MYSQL_DATABASE: {{.Name}}
      MYSQL_ROOT_PASSWORD: 123456
      SERVICE_TAGS: dev
      SERVICE_NAME: mysql
    volumes:
      - mysql-data:/var/lib/mysql
    networks:
      - {{.Name}}
    ports:
      - "3306:3306"

  phpmyadmin:
    depends_on:
      - db
    image: phpmyadmin/phpmyadmin
    container_name: {{.Name}}_phpmyadmin
    restart: always
    ports:
      - "8080:80"
    environment:
      PMA_HOST: db
      MYSQL_ROOT_PASSWORD: 123456
    networks:
      - {{.Name}}

  redis:
    image: redis:alpine
    container_name: {{.Name}}_redis
    ports:
      - "6379:6379"
    networks:
      - {{.Name}}

networks:
  {{.Name}}:
    driver: bridge
volumes:
  mysql-data:
`

const nodeEcosystem = `module.exports = {
  apps: [
    {
      name: "{{.Name}}-prod",
      script: "npm",
      args: "run start:prod",
      interpreter: "/bin/bash",
      env: {
        NODE_ENV: "production",
        PORT: 3010,
      },
    },
    {
      name: "{{.Name}}-dev",
      script: "npm",
      args: "run start:dev",
      interpreter: "/bin/bash",
      watch: true,
      env: {
        NODE_ENV: "development",
        PORT: 3010,
      },
    },
  ],
};
`

const nodeDeploy = `#!/usr/bin/env bash
set -e

git pull
docker-compose down
docker-compose up -d
docker exec {{.Name}} npm ci
docker exec {{.Name}} npm run build
docker exec {{.Name}} pm2 start ecosystem.config.js --only "{{.Name}}-prod"
`

const nodeEnv = `# {{.Name}} environment
NODE_ENV=development
PORT=3010

DB_HOST=db
DB_PORT=3306
DB_DATABASE={{.Name}}
DB_USERNAME=root
DB_PASSWORD=123456

REDIS_HOST=redis
REDIS_PORT=6379
`
