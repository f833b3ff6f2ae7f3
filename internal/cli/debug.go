package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/routine/internal/storage"
)

type DebugCmd struct {
	Config DebugConfigCmd `cmd:"" help:"Show the effective configuration."`
	Dump   DebugDumpCmd   `cmd:"" help:"List stored keys, or dump one key as JSON."`
}

type DebugConfigCmd struct{}

func (cmd *DebugConfigCmd) Run(ctx *Context) error {
	path, err := ctx.Config.StoragePath()
	if err != nil {
		return err
	}
	output := map[string]any{
		"config":           ctx.Config.File,
		"backend":          ctx.Config.Storage.Backend,
		"path":             path,
		"remindersEnabled": ctx.Config.Reminders.Enabled,
		"leadMinutes":      ctx.Config.Reminders.LeadMinutes,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(ctx.Out, string(jsonBytes))
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" optional:"" help:"Storage key to dump. Lists every stored key when omitted."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	if cmd.Key == "" {
		return listKeys(ctx)
	}

	raw, err := ctx.Store.Get(context.Background(), cmd.Key)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(ctx.Out, "Key %s has not been written yet\n", cmd.Key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.Key, err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("%s does not hold valid JSON: %w", cmd.Key, err)
	}
	fmt.Fprintln(ctx.Out, out.String())
	return nil
}

func listKeys(ctx *Context) error {
	lister, ok := ctx.Store.(storage.Lister)
	if !ok {
		return fmt.Errorf("the %s backend cannot list its keys", ctx.Config.Storage.Backend)
	}
	keys, err := lister.Keys(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	if len(keys) == 0 {
		fmt.Fprintln(ctx.Out, "Nothing stored yet")
		return nil
	}

	tbl := uitable.New()
	tbl.AddRow("KEY", "SIZE")
	for _, k := range keys {
		size := "?"
		if raw, err := ctx.Store.Get(context.Background(), k); err == nil {
			size = humanize.Bytes(uint64(len(raw)))
		}
		tbl.AddRow(k, size)
	}
	fmt.Fprintln(ctx.Out, tbl)
	return nil
}
