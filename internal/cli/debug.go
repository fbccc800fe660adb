package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/questlog/internal/storage"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" name:"db-path" help:"Show the store location."`
	Keys   DebugKeysCmd   `cmd:"" help:"List the stored slot keys."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump a stored slot as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) ReadOnly() bool { return true }

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) ReadOnly() bool { return true }

func (cmd *DebugKeysCmd) Run(ctx *Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		ctx.println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Slot key, e.g. habitQuest_v1 or diary_v1."`
}

func (cmd *DebugDumpCmd) ReadOnly() bool { return true }

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	data, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("slot not found: %s", cmd.Key)
		}
		return fmt.Errorf("failed to read slot: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("slot %s does not hold valid JSON: %w", cmd.Key, err)
	}
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal slot: %w", err)
	}

	ctx.println(string(jsonBytes))
	return nil
}
