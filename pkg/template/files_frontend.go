package template

const frontendDockerfile = `FROM {{.Image}}

WORKDIR /app

RUN npm install pm2 -g

EXPOSE 3000
`

const frontendCompose = `version: "3.9"
services:
  admin:
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
    ports:
      - "3000:3000"
    networks:
      - {{.Name}}
networks:
  {{.Name}}:
    driver: bridge
`

const reactEcosystem = `module.exports = {
  apps: [
    {
      name: "{{.Name}}-prod",
      script: "yarn",
      args: "start",
      interpreter: "/bin/bash",
      env: {
        NODE_ENV: "production",
      },
    },
    {
      name: "{{.Name}}-dev",
      script: "yarn",
      args: "dev",
      interpreter: "/bin/bash",
      watch: true,
    },
  ],
};
`

const frontendDeploy = `#!/usr/bin/env bash
set -e

git pull
docker-compose down
docker-compose up -d
docker exec {{.Name}} npm ci
docker exec {{.Name}} npm run build
docker exec {{.Name}} pm2 start ecosystem.config.js --only "{{.Name}}-prod"
`

const reactEnv = `# {{.Name}} environment
NODE_ENV=production
PORT=3000
NEXT_PUBLIC_APP_NAME={{.Name}}
NEXT_PUBLIC_API_URL=http://localhost:3010
`

const viteDockerfile = `FROM {{.Image}}

WORKDIR /app

RUN npm install pm2 -g

EXPOSE 4173
EXPOSE 5173
`

const viteCompose = `version: "3.9"
services:
  web:
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
    ports:
      - "4173:4173"
      - "5173:5173"
    networks:
      - {{.Name}}
networks:
  {{.Name}}:
    driver: bridge
`

const viteEcosystem = `module.exports = {
  apps: [
    {
      name: "{{.Name}}-prod",
      script: "npm",
      args: "run preview -- --host 0.0.0.0 --port 4173",
      interpreter: "/bin/bash",
      env: {
        NODE_ENV: "production",
      },
    },
    {
      name: "{{.Name}}-dev",
      script: "npm",
      args: "run dev -- --host 0.0.0.0 --port 5173",
      interpreter: "/bin/bash",
      watch: true,
    },
  ],
};
`

const viteEnv = `# {{.Name}} environment
NODE_ENV=production
VITE_APP_NAME={{.Name}}
VITE_API_URL=http://localhost:3010
`

// bitbucketPipelines is shared by every type; only the image and cache vary.
const bitbucketPipelines = `image: {{.Image}}
pipelines:
  default:
    - step:
        name: Install, Build, and Deploy
        script:
          - chmod +x ./deploy.sh
          - bash ./deploy.sh

  branches:
    master:
      - step:
          name: Install, Build, and Deploy
          caches:
            - {{.CacheKey}}
          script:
            - chmod +x ./deploy.sh
            - bash ./deploy.sh

    main:
      - step:
          name: Install, Build, and Deploy
          caches:
            - {{.CacheKey}}
          script:
            - chmod +x ./deploy.sh
            - bash ./deploy.sh

    dev:
      - step:
          name: Install, Build, and Deploy
          caches:
            - {{.CacheKey}}
          script:
            - chmod +x ./deploy.sh
            - bash ./deploy.sh

  custom:
    merge-deploy:
      - step:
          name: Manual Deployment After Merge
          caches:
            - {{.CacheKey}}
          script:
            - chmod +x ./deploy.sh
            - bash ./deploy.sh
`
