package container

import (
	"testing"

	"github.com/edgeap/edgeap/config"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
)

func TestMongoRunOptions(t *testing.T) {
	cfg := config.MongoDBConfig{User: "test", Password: "secret", Database: "edgeap_test", Port: "27018"}
	opts := mongoRunOptions("audit", cfg)
	assert.Equal(t, "mongo", opts.Repository)
	assert.ElementsMatch(t, []string{
		"MONGO_INITDB_ROOT_USERNAME=test",
		"MONGO_INITDB_ROOT_PASSWORD=secret",
		"MONGO_INITDB_DATABASE=edgeap_test",
	}, opts.Env)
	assert.Equal(t, []docker.PortBinding{{HostIP: "127.0.0.1", HostPort: "27018"}}, opts.PortBindings[mongoPort])

	cfg.Port, cfg.Database = "", ""
	opts = mongoRunOptions("audit", cfg)
	assert.Len(t, opts.Env, 2)
	assert.Nil(t, opts.PortBindings)
}

func TestPublishedMongoPort(t *testing.T) {
	c := &docker.APIContainers{Ports: []docker.APIPort{
		{PrivatePort: 8080, PublicPort: 18080, Type: "tcp", IP: "0.0.0.0"},
		{PrivatePort: 27017, PublicPort: 27018, Type: "tcp", IP: "127.0.0.1"},
	}}
	host, port, ok := publishedMongoPort(c)
	assert.True(t, ok)
	assert.Equal(t, "127.0.0.1", host)
	assert.Equal(t, "27018", port)

	_, _, ok = publishedMongoPort(&docker.APIContainers{Ports: []docker.APIPort{{PrivatePort: 27017, Type: "tcp"}}})
	assert.False(t, ok, "unpublished port")
}
