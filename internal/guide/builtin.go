// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package guide

import "github.com/pdiddy/opsdocs/pkg/types"

// Redis builds the Redis 8.x installation and configuration guide.
func Redis() (*types.Document, error) {
	return buildBuiltin(NameRedis)
}

// RabbitMQ builds the RabbitMQ 4.1.x installation and cluster guide.
func RabbitMQ() (*types.Document, error) {
	return buildBuiltin(NameRabbitMQ)
}

// RabbitMQFailover builds the RabbitMQ cluster failover test-case guide.
func RabbitMQFailover() (*types.Document, error) {
	return buildBuiltin(NameRabbitMQFailover)
}

func buildBuiltin(name string) (*types.Document, error) {
	guides, err := Builtin()
	if err != nil {
		return nil, err
	}
	g, err := Find(guides, name)
	if err != nil {
		return nil, err
	}
	return Build(g, Options{Theme: types.DefaultTheme()})
}
