package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"studyplan/internal/config"
	"studyplan/internal/engine"
	"studyplan/internal/storage"
	"studyplan/internal/ui"
)

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg := config.Load()
	path := cfg.DBPath
	if path == "" {
		var err error
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}

	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	svc := engine.NewService(storage.NewStore(db), zap.L())
	svc.Load(ctx)

	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup, nil
}

// reportSaveError downgrades a failed write to a warning: the mutation took
// effect in memory, only durability was lost.
func reportSaveError(out io.Writer, err error) error {
	var werr *storage.WriteError
	if errors.As(err, &werr) {
		fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" change not saved: "+werr.Error()))
		return nil
	}
	return err
}

// resolveTaskID expands a unique id prefix to a full task id.
func resolveTaskID(svc *engine.Service, arg string) (string, error) {
	var matches []string
	for _, t := range svc.Tasks() {
		if t.ID == arg {
			return arg, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return arg, nil // let the engine report not-found
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
}

func resolveGoalID(svc *engine.Service, arg string) (string, error) {
	var matches []string
	for _, g := range svc.Goals() {
		if g.ID == arg {
			return arg, nil
		}
		if strings.HasPrefix(g.ID, arg) {
			matches = append(matches, g.ID)
		}
	}
	switch len(matches) {
	case 0:
		return arg, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
}
