package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickcicd/pkg/git"
	"quickcicd/pkg/template"
)

func TestCheckGeneratedFiles_Valid(t *testing.T) {
	dir := t.TempDir()
	registry := template.NewRegistry()
	artifacts, err := registry.Render(template.Profile{
		Type:           template.TypeNodeBackend,
		Name:           "demo-app",
		RuntimeVersion: "node:20.16.0",
		CacheKey:       "npm",
	})
	require.NoError(t, err)
	for _, a := range artifacts {
		require.NoError(t, os.WriteFile(filepath.Join(dir, a.Name), []byte(a.Content), 0644))
	}

	checks := checkGeneratedFiles(dir)
	require.Len(t, checks, 3)
	for _, c := range checks {
		assert.Equal(t, checkOK, c.Status, "%s: %s", c.Name, c.Detail)
	}
	assert.Equal(t, "FROM node:20.16.0", checks[2].Detail)
}

func TestCheckGeneratedFiles_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docker-compose.yml"), []byte("services:\n  app:\n image: x\n   ports: [\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("# nothing here\nRUN echo hi\n"), 0644))

	checks := checkGeneratedFiles(dir)
	require.Len(t, checks, 2)
	assert.Equal(t, "docker-compose.yml", checks[0].Name)
	assert.Equal(t, checkFail, checks[0].Status)
	assert.Equal(t, "Dockerfile", checks[1].Name)
	assert.Equal(t, checkFail, checks[1].Status)
}

func TestCheckGeneratedFiles_None(t *testing.T) {
	assert.Empty(t, checkGeneratedFiles(t.TempDir()))
}

func TestDockerfileBase(t *testing.T) {
	assert.Equal(t, "node:20", dockerfileBase("# comment\nFROM node:20 AS build\nFROM nginx\n"))
	assert.Equal(t, "php:8.2-fpm", dockerfileBase("from php:8.2-fpm\n"))
	assert.Equal(t, "", dockerfileBase("RUN true\n"))
}

func TestValidateYAML(t *testing.T) {
	assert.NoError(t, validateYAML([]byte("image: node:20\n")))
	assert.Error(t, validateYAML([]byte("")))
	assert.Error(t, validateYAML([]byte("a: [\n")))
}

func TestDetectRuntimeAndManifest(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, template.RuntimeKind(""), detectRuntime(dir))
	assert.Equal(t, checkWarn, checkManifest(dir, "").Status)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "composer.json"), []byte(`{"name":"acme/shop"}`), 0644))
	assert.Equal(t, template.RuntimePHP, detectRuntime(dir))
	c := checkManifest(dir, template.RuntimePHP)
	assert.Equal(t, checkOK, c.Status)
	assert.Contains(t, c.Detail, "acme/shop")

	c = checkManifest(dir, template.RuntimeNode)
	assert.Equal(t, checkFail, c.Status)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"web","engines":{"node":">=20"}}`), 0644))
	assert.Equal(t, template.RuntimeNode, detectRuntime(dir))
	c = checkManifest(dir, template.RuntimeNode)
	assert.Equal(t, checkOK, c.Status)
	assert.Contains(t, c.Detail, "engines.node >=20")
}

func TestCheckRuntime_WithoutDocker(t *testing.T) {
	c := checkRuntime(context.Background(), nil, template.RuntimeNode, func(context.Context) (string, error) {
		return "20.16.0", nil
	})
	assert.Equal(t, checkOK, c.Status)
	assert.Contains(t, c.Detail, "base image node:20.16.0")

	c = checkRuntime(context.Background(), nil, template.RuntimePHP, func(context.Context) (string, error) {
		return "8.2.12", nil
	})
	assert.Equal(t, checkOK, c.Status)
	assert.Contains(t, c.Detail, "base image php:8.2.12-fpm")

	c = checkRuntime(context.Background(), nil, template.RuntimePHP, func(context.Context) (string, error) {
		return "", errors.New("php not found")
	})
	assert.Equal(t, checkWarn, c.Status)
}

func TestCheckPorts_InUse(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	checks := checkPorts([]string{fmt.Sprintf("%d:80", port)})
	require.Len(t, checks, 1)
	assert.Equal(t, checkWarn, checks[0].Status)
	assert.Contains(t, checks[0].Detail, "in use")

	checks = checkPorts([]string{"bogus"})
	require.Len(t, checks, 1)
	assert.Equal(t, checkFail, checks[0].Status)
}

func TestPrintChecks(t *testing.T) {
	var buf bytes.Buffer
	failed := printChecks(&buf, []check{
		{Name: "Docker", Detail: "Engine 27.0"},
		{Name: "Compose", Status: checkWarn, Detail: "missing"},
		{Name: "Dockerfile", Status: checkFail, Detail: "no FROM instruction"},
	})
	assert.Equal(t, 1, failed)
	assert.Contains(t, buf.String(), "✅ Docker")
	assert.Contains(t, buf.String(), "❌ Dockerfile")
}

func TestCheckRepo_NotARepository(t *testing.T) {
	c := checkRepo(git.NewRepo(t.TempDir()))
	assert.Equal(t, checkWarn, c.Status)
	assert.Contains(t, c.Detail, "not a git repository")
}
