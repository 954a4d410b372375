package config

import (
	"testing"
	"time"

	"github.com/expfactory/expanalysis/internal/resultsapi"
	"github.com/google/go-cmp/cmp"
)

func TestParseConfig(t *testing.T) {
	t.Setenv(EnvAccessToken, "")

	t.Run("with a valid config file", func(t *testing.T) {
		config, err := ReadConfig("testdata/valid-config.json")
		if err != nil {
			t.Fatal(err)
		}
		if config.MaxPages != 17 {
			t.Fatal("unexpected max pages", config.MaxPages)
		}
		if config.Timeout() != DefaultTimeoutSeconds*time.Second {
			t.Fatal("unexpected timeout", config.Timeout())
		}
		if config.Path() != "testdata/valid-config.json" {
			t.Fatal("unexpected path", config.Path())
		}
		token, err := config.AccessTokenValue()
		if err != nil {
			t.Fatal(err)
		}
		if token != "antani-token" {
			t.Fatal("unexpected token", token)
		}
	})

	t.Run("with an empty config", func(t *testing.T) {
		config, err := ParseConfig([]byte(`{}`))
		if err != nil {
			t.Fatal(err)
		}
		expect := &Config{
			ResultsURL:     resultsapi.DefaultBaseURL,
			MaxPages:       resultsapi.DefaultMaxPages,
			TimeoutSeconds: DefaultTimeoutSeconds,
		}
		if diff := cmp.Diff(expect, config, cmp.AllowUnexported(Config{})); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with invalid values", func(t *testing.T) {
		inputs := []string{
			`{"max_pages": -1}`,
			`{"timeout_seconds": -1}`,
			`{"results_url": "ftp://antani"}`,
			`{"max_pages": "antani"}`,
			`{`,
		}
		for _, input := range inputs {
			if _, err := ParseConfig([]byte(input)); err == nil {
				t.Fatal("expected an error for", input)
			}
		}
	})

	t.Run("with a nonexistent file", func(t *testing.T) {
		if _, err := ReadConfig("testdata/nonexistent.json"); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestAccessTokenValue(t *testing.T) {
	t.Run("the environment wins", func(t *testing.T) {
		t.Setenv(EnvAccessToken, "from-env")
		config := &Config{AccessToken: "from-config"}
		token, err := config.AccessTokenValue()
		if err != nil {
			t.Fatal(err)
		}
		if token != "from-env" {
			t.Fatal("unexpected token", token)
		}
	})

	t.Run("the config wins over the file", func(t *testing.T) {
		t.Setenv(EnvAccessToken, "")
		config := &Config{AccessToken: "from-config", AccessTokenFile: "testdata/token.txt"}
		token, err := config.AccessTokenValue()
		if err != nil {
			t.Fatal(err)
		}
		if token != "from-config" {
			t.Fatal("unexpected token", token)
		}
	})

	t.Run("with a missing token file", func(t *testing.T) {
		t.Setenv(EnvAccessToken, "")
		config := &Config{AccessTokenFile: "testdata/nonexistent.txt"}
		if _, err := config.AccessTokenValue(); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("without any token", func(t *testing.T) {
		t.Setenv(EnvAccessToken, "")
		token, err := (&Config{}).AccessTokenValue()
		if err != nil || token != "" {
			t.Fatal("unexpected result", token, err)
		}
	})
}
