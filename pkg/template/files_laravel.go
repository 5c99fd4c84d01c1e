package template

const laravelDockerfile = `FROM {{.BaseImage}}

WORKDIR /var/www

RUN apt-get update && apt-get install -y \
    git \
    curl \
    zip \
    unzip \
    libpng-dev \
    libonig-dev \
    libxml2-dev \
    && apt-get clean && rm -rf /var/lib/apt/lists/*

RUN docker-php-ext-install pdo_mysql mbstring exif pcntl bcmath gd

COPY --from=composer:latest /usr/bin/composer /usr/bin/composer

COPY . /var/www

RUN chown -R www-data:www-data /var/www/storage /var/www/bootstrap/cache

EXPOSE 9000

CMD ["php-fpm"]
`

const laravelCompose = `version: "3.8"
services:
  app:
    build:
      context: ./
      dockerfile: Dockerfile
    image: {{.Name}}
    container_name: {{.Name}}
    restart: unless-stopped
    working_dir: /var/www/
    volumes:
      - ./:/var/www
    networks:
      - {{.Name}}
    depends_on:
      - db

  webserver:
    image: nginx:alpine
    container_name: {{.Name}}_nginx
    restart: unless-stopped
    ports:
      - "8000:80"
    volumes:
      - ./:/var/www
      - ./docker/nginx:/etc/nginx/conf.d
    networks:
      - {{.Name}}
    depends_on:
      - app

  db:
    image: mysql:8.0
    container_name: {{.Name}}_db
    restart: unless-stopped
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

networks:
  {{.Name}}:
    driver: bridge
volumes:
  mysql-data:
`

const laravelDeploy = `#!/usr/bin/env bash
set -e

git pull
docker-compose down
docker-compose up -d
docker exec {{.Name}} composer install --no-interaction --prefer-dist --optimize-autoloader
docker exec {{.Name}} php artisan migrate --force
docker exec {{.Name}} php artisan config:cache
docker exec {{.Name}} php artisan route:cache
docker exec {{.Name}} php artisan view:cache
`

const laravelEnv = `APP_NAME={{.Name}}
APP_ENV=production
APP_KEY=
APP_DEBUG=false
APP_URL=http://localhost:8000

LOG_CHANNEL=stack

DB_CONNECTION=mysql
DB_HOST=db
DB_PORT=3306
DB_DATABASE={{.Name}}
DB_USERNAME=root
DB_PASSWORD=123456

CACHE_DRIVER=file
QUEUE_CONNECTION=sync
SESSION_DRIVER=file
`

// Mounted into the webserver container at /etc/nginx/conf.d.
const laravelNginx = `server {
    listen 80;
    index index.php index.html;
    root /var/www/public;

    error_log  /var/log/nginx/error.log;
    access_log /var/log/nginx/access.log;

    client_max_body_size 20M;

    location / {
        try_files $uri $uri/ /index.php?$query_string;
    }

    location ~ \.php$ {
        try_files $uri =404;
        fastcgi_split_path_info ^(.+\.php)(/.+)$;
        fastcgi_pass app:9000;
        fastcgi_index index.php;
        include fastcgi_params;
        fastcgi_param SCRIPT_FILENAME $document_root$fastcgi_script_name;
        fastcgi_param PATH_INFO $fastcgi_path_info;
    }

    location ~ /\.(?!well-known).* {
        deny all;
    }
}
`
