package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/hyperjump/lexbusca/internal/config"
	"github.com/hyperjump/lexbusca/internal/corpus"
	"github.com/hyperjump/lexbusca/internal/extract"
)

func TestServer_StopBeforeStart(t *testing.T) {
	c := corpus.New(extract.NewExtractor(), nil, nil)
	srv := NewServer(c, &config.ServerConfig{Host: "127.0.0.1", Port: 0}, nil)
	if err := srv.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() = %v", err)
	}
	if err := srv.Start(); !errors.Is(err, http.ErrServerClosed) {
		t.Errorf("Start() after Stop = %v, want http.ErrServerClosed", err)
	}
}

func TestNewServer_NilConfig(t *testing.T) {
	srv := NewServer(corpus.New(extract.NewExtractor(), nil, nil), nil, nil)
	if srv.Handler() == nil {
		t.Fatal("Handler() returned nil")
	}
}
