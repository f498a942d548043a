//go:build integration

// Package testutil starts throwaway databases for integration tests.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ServiceContainer wraps a started testcontainer and the address clients use
// to reach it: a MongoDB URI, a PostgreSQL DSN or a Redis host:port.
type ServiceContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a MongoDB container.
func SetupMongoDB(ctx context.Context) (*ServiceContainer, error) {
	mongoContainer, err := mongodb.Run(ctx, "mongo:7.0")
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		_ = mongoContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}
	return &ServiceContainer{Container: mongoContainer, URI: uri}, nil
}

// SetupPostgres starts a PostgreSQL container and returns its DSN in URI.
func SetupPostgres(ctx context.Context) (*ServiceContainer, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "quote",
				"POSTGRES_PASSWORD": "quote",
				"POSTGRES_DB":       "quote",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	addr, err := endpoint(ctx, c, "5432/tcp")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, err
	}
	return &ServiceContainer{
		Container: c,
		URI:       fmt.Sprintf("postgres://quote:quote@%s/quote?sslmode=disable", addr),
	}, nil
}

// SetupRedis starts a Redis container and returns host:port in URI.
func SetupRedis(ctx context.Context) (*ServiceContainer, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Redis container: %w", err)
	}

	addr, err := endpoint(ctx, c, "6379/tcp")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, err
	}
	return &ServiceContainer{Container: c, URI: addr}, nil
}

func endpoint(ctx context.Context, c testcontainers.Container, port string) (string, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return "", fmt.Errorf("failed to get mapped port: %w", err)
	}
	return fmt.Sprintf("%s:%s", host, mapped.Port()), nil
}

// Cleanup terminates the container.
func (s *ServiceContainer) Cleanup(ctx context.Context) error {
	if s.Container != nil {
		if err := s.Container.Terminate(ctx); err != nil {
			return fmt.Errorf("failed to terminate container: %w", err)
		}
	}
	return nil
}
