package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if len(cfg.Community.AllowedDomains) != 1 || cfg.Community.AllowedDomains[0] != "@google.com" {
		t.Fatalf("unexpected allowed domains: %v", cfg.Community.AllowedDomains)
	}
	if cfg.Community.AdminEmailSeed != "mjeong23@outlook.com" {
		t.Fatalf("unexpected admin seed: %q", cfg.Community.AdminEmailSeed)
	}
	if cfg.Community.ImageMaxMB != 1 {
		t.Fatalf("expected 1MB image limit, got %v", cfg.Community.ImageMaxMB)
	}
	if !cfg.Community.AccessPolicy().ReadOnlyForUnapproved {
		t.Fatalf("expected read-only policy by default")
	}
	if cfg.Storage.Backend != BackendFile || cfg.Storage.Key != "school-community-app" {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
}

func TestLoad_NormalisesDomainsAndSeed(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ALLOWED_DOMAINS":  " @School.EDU ,@google.com",
		"ADMIN_EMAIL_SEED": "  Admin@School.edu ",
		"STORAGE_BACKEND":  "sqlite",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"@school.edu", "@google.com"}
	if len(cfg.Community.AllowedDomains) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.Community.AllowedDomains)
	}
	for i := range want {
		if cfg.Community.AllowedDomains[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, cfg.Community.AllowedDomains)
		}
	}
	if cfg.Community.AdminEmailSeed != "admin@school.edu" {
		t.Fatalf("unexpected admin seed: %q", cfg.Community.AdminEmailSeed)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend":   {"STORAGE_BACKEND": "etcd"},
		"non positive size": {"IMAGE_MAX_MB": "0"},
		"bad admin email":   {"ADMIN_EMAIL_SEED": "not-an-email"},
		"bad bool":          {"READ_ONLY_FOR_UNAPPROVED": "maybe"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}

func TestIsProduction(t *testing.T) {
	if (&Config{Env: "Production"}).IsProduction() != true {
		t.Fatalf("expected production")
	}
	if (&Config{Env: "development"}).IsProduction() {
		t.Fatalf("expected non-production")
	}
}
