package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"restyle/config"
	"restyle/state"
	"restyle/utils/debug"
)

const debounce = 100 * time.Millisecond

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no style document has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
		if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
			dst = filepath.Join(dst, strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))+".css")
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Watch, env.Verify = cmd.Bool("watch"), cmd.Bool("verify")

	// style documents written in legacy code pages
	if cp := cmd.String("input-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Decoding style document", zap.String("charset", n))
		}
	}

	r, err := New(&env.Cfg.Styling, log)
	if err != nil {
		return err
	}

	j := &job{
		src:      src,
		dst:      dst,
		pretty:   cmd.Bool("pretty"),
		verify:   env.Verify,
		codePage: env.CodePage,
		renderer: r,
		rpt:      env.Rpt,
		log:      log,
	}

	log.Info("Rendering", zap.String("source", src), zap.String("destination", j.destination()))
	if err := j.run(); err != nil {
		if !env.Watch {
			return err
		}
		log.Error("Unable to render", zap.Error(err))
	}
	if !env.Watch {
		return nil
	}
	return j.watch(ctx)
}

// job renders single style document.
type job struct {
	src, dst string
	pretty   bool
	verify   bool
	codePage encoding.Encoding
	renderer *Renderer
	rpt      *config.Report
	log      *zap.Logger
}

func (j *job) destination() string {
	if len(j.dst) == 0 {
		return "STDOUT"
	}
	return j.dst
}

func (j *job) run() error {
	start := time.Now()

	data, err := os.ReadFile(j.src)
	if err != nil {
		return fmt.Errorf("unable to read style document: %w", err)
	}
	if j.codePage != nil {
		if data, err = j.codePage.NewDecoder().Bytes(data); err != nil {
			return fmt.Errorf("unable to decode style document: %w", err)
		}
	}
	j.rpt.StoreData("input/"+filepath.Base(j.src), data)
	if j.rpt != nil {
		if style, err := Decode(data); err == nil {
			j.rpt.StoreData("input/"+filepath.Base(j.src)+".tree", []byte(debug.DumpStyle(style)))
		}
	}

	out, err := j.renderer.Render(data)
	if err != nil {
		return fmt.Errorf("unable to render %s: %w", filepath.Base(j.src), err)
	}

	if j.verify || j.pretty {
		sheet, err := j.renderer.Verify(out, filepath.Base(j.src))
		if err != nil && j.verify {
			j.rpt.StoreData("output/rejected.css", out)
			return err
		}
		if j.pretty {
			out = []byte(sheet.String())
		}
	}
	j.rpt.StoreData("output/"+filepath.Base(j.destination()), out)

	if err := j.write(out); err != nil {
		return err
	}
	j.log.Info("Rendered", zap.String("destination", j.destination()), zap.Int("bytes", len(out)), zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (j *job) write(out []byte) error {
	if len(j.dst) == 0 {
		if _, err := os.Stdout.Write(append(out, '\n')); err != nil {
			return fmt.Errorf("unable to write result: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(j.dst), 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := os.WriteFile(j.dst, out, 0644); err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	return nil
}

// watch renders document again every time it changes until context is done.
// Directory is watched rather than the file itself so editors replacing the
// file on save are noticed.
func (j *job) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to watch style document: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(j.src)); err != nil {
		return fmt.Errorf("unable to watch style document: %w", err)
	}
	j.log.Info("Watching for changes", zap.String("source", j.src))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || filepath.Clean(event.Name) != j.src {
				continue
			}
			pending = time.After(debounce)

		case <-pending:
			pending = nil
			j.log.Debug("Source changed, rendering", zap.String("source", j.src))
			if err := j.run(); err != nil {
				j.log.Error("Unable to render", zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			j.log.Error("Watcher error", zap.Error(err))
		}
	}
}
