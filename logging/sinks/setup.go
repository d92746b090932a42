package sinks

import (
	"context"
	"fmt"
	"os"

	"mineflow/bot/logging"
)

// BuildRouter assembles the sinks named in cfg.EnabledSinks and starts a
// router over them. Recognized names are "console" (stdout), "json"
// (newline-delimited events appended to cfg.JSON.FilePath) and "memory".
// The caller owns the router and must Close it to flush file-backed sinks.
func BuildRouter(clock logging.Clock, cfg logging.Config) (*logging.Router, error) {
	named := make([]logging.NamedSink, 0, len(cfg.EnabledSinks))
	for _, name := range cfg.EnabledSinks {
		switch name {
		case "console":
			named = append(named, logging.NamedSink{Name: name, Sink: NewConsoleSink(os.Stdout)})
		case "json":
			if cfg.JSON.FilePath == "" {
				return nil, fmt.Errorf("json sink enabled without a file path")
			}
			file, err := os.OpenFile(cfg.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, fmt.Errorf("open json sink file: %w", err)
			}
			named = append(named, logging.NamedSink{Name: name, Sink: &fileJSON{
				JSON: NewJSON(file, cfg.JSON.FlushInterval),
				file: file,
			}})
		case "memory":
			named = append(named, logging.NamedSink{Name: name, Sink: NewMemorySink()})
		default:
			return nil, fmt.Errorf("unknown sink %q", name)
		}
	}
	return logging.NewRouter(clock, cfg, named)
}

// fileJSON owns the file handle behind a JSON sink so Close releases it.
type fileJSON struct {
	*JSON
	file *os.File
}

func (s *fileJSON) Close(ctx context.Context) error {
	err := s.JSON.Close(ctx)
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}
