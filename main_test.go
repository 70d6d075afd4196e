package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// The smoke test runs the full wiring with no external infrastructure:
	// in-memory SQLite and no broker.
	viper.Set("DATABASE_DSN", "")
	viper.Set("RABBITMQ_URL", "")
	viper.Set("APP_PORT", ":8081") // Use a different port for tests

	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestServerStartupAndHealthCheck(t *testing.T) {
	appPort := viper.GetString("APP_PORT")

	app, mqClient, err := buildApp()
	if err != nil {
		t.Fatalf("Failed to build application: %v", err)
	}
	assert.Nil(t, mqClient) // no RABBITMQ_URL configured

	go func() {
		if listenErr := app.Listen(appPort); listenErr != nil {
			log.Printf("Test server listen error: %v", listenErr)
		}
	}()
	defer func() {
		if shutdownErr := app.Shutdown(); shutdownErr != nil {
			log.Printf("Error during Fiber shutdown: %v", shutdownErr)
		}
	}()

	// Give the server a moment to start
	time.Sleep(100 * time.Millisecond)

	// --- Test Health Endpoint ---
	t.Run("HealthCheck", func(t *testing.T) {
		healthCheckURL := fmt.Sprintf("http://localhost%s/health", appPort)
		resp, err := http.Get(healthCheckURL)
		if err != nil {
			t.Fatalf("Health check request failed: %v", err)
		}
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Failed to read health check response body: %v", err)
		}
		assert.Contains(t, string(bodyBytes), "\"status\":\"healthy\"")
	})

	// --- Test Public Catalog ---
	t.Run("PublicCatalog", func(t *testing.T) {
		productsURL := fmt.Sprintf("http://localhost%s/api/v1/products", appPort)
		resp, err := http.Get(productsURL)
		if err != nil {
			t.Fatalf("Products request failed: %v", err)
		}
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Failed to read products response body: %v", err)
		}
		assert.Contains(t, string(bodyBytes), "高山烏龍茶") // seeded catalog entry
	})

	// --- Test Unauthenticated Access ---
	t.Run("UnauthenticatedAccess", func(t *testing.T) {
		cartURL := fmt.Sprintf("http://localhost%s/api/v1/cart", appPort)
		resp, err := http.Get(cartURL)
		if err != nil {
			t.Fatalf("Cart request failed without token: %v", err)
		}
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "Expected Unauthorized for /cart without token")
	})
}
