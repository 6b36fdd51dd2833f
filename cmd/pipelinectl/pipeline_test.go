package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostOfExtractsHostFromURL(t *testing.T) {
	assert.Equal(t, "api.example.com", hostOf("https://api.example.com/base"))
}

func TestSchemeOfExtractsScheme(t *testing.T) {
	assert.Equal(t, "https", schemeOf("https://api.example.com/base"))
}

func TestHostOfReturnsEmptyOnInvalidURL(t *testing.T) {
	assert.Equal(t, "", hostOf("://bad"))
}

func TestPipelineDataDefinitionSetsBasePathMethod(t *testing.T) {
	cfg := config{BaseURL: "https://api.example.com"}
	def := pipelineDataDefinition(cfg, "widgets/:id", "GET")

	assert.Equal(t, "api.example.com", def.Base)
	assert.Equal(t, "widgets/:id", def.Path)
	assert.Equal(t, "GET", def.Method)
}
