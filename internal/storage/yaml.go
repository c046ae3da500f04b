package storage

import (
	"context"

	"gopkg.in/yaml.v3"
)

// loadYAML reads and decodes the value at key into target. A missing key
// leaves target at its zero value and reports found=false.
func loadYAML(ctx context.Context, kv KV, key string, target interface{}) (found bool, err error) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return false, err
	}
	return true, nil
}

// saveYAML encodes source and writes it at key.
func saveYAML(ctx context.Context, kv KV, key string, source interface{}) error {
	data, err := yaml.Marshal(source)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, data)
}
