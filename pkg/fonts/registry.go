package fonts

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/golang/freetype/truetype"
	"github.com/tdewolff/canvas"
	"golang.org/x/image/font"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/microprint/pkg/errors"
)

// Registry holds parsed fonts for each role.
//
// Load parses everything in the background; Ready blocks until it is done.
// Faces and families must not be requested before Ready returns nil.
type Registry struct {
	paths  map[Role]string
	logger *log.Logger

	loadOnce sync.Once
	done     chan struct{}
	err      error

	fonts    map[Role]*truetype.Font
	families map[Role]*canvas.FontFamily
}

// NewRegistry creates a registry. paths maps roles to TTF files; roles
// without a path use the embedded Go fonts.
func NewRegistry(paths map[Role]string, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		paths:  paths,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Default returns a registry over the embedded fonts that is already loaded.
func Default() *Registry {
	r := NewRegistry(nil, nil)
	_ = r.Load(context.Background())
	return r
}

// Load parses all fonts in parallel. Only the first call does any work;
// later calls return the first result.
func (r *Registry) Load(ctx context.Context) error {
	r.loadOnce.Do(func() {
		defer close(r.done)
		r.err = r.load(ctx)
	})
	<-r.done
	return r.err
}

// Start runs Load in a goroutine, so callers can lay out while fonts parse.
func (r *Registry) Start(ctx context.Context) {
	go func() { _ = r.Load(ctx) }()
}

// Ready waits until Load has finished and returns its error.
func (r *Registry) Ready(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return errors.Wrap(errors.ErrCodeUnknown, ctx.Err(), "waiting for fonts")
	}
}

func (r *Registry) load(ctx context.Context) error {
	type parsed struct {
		font   *truetype.Font
		family *canvas.FontFamily
	}
	results := make([]parsed, len(Roles))

	g, ctx := errgroup.WithContext(ctx)
	for i, role := range Roles {
		g.Go(func() error {
			data, src, err := r.read(role)
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			f, err := truetype.Parse(data)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s font %s", role, src)
			}
			family := canvas.NewFontFamily("microprint-" + string(role))
			if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s font %s", role, src)
			}

			results[i] = parsed{font: f, family: family}
			r.logger.Debug("loaded font", "role", role, "source", src, "bytes", len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.fonts = make(map[Role]*truetype.Font, len(Roles))
	r.families = make(map[Role]*canvas.FontFamily, len(Roles))
	for i, role := range Roles {
		r.fonts[role] = results[i].font
		r.families[role] = results[i].family
	}
	return nil
}

func (r *Registry) read(role Role) ([]byte, string, error) {
	path := r.paths[role]
	if path == "" {
		return Embedded(role), "embedded", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s font", role)
	}
	return data, path, nil
}

// Font returns the parsed font for role.
func (r *Registry) Font(role Role) *truetype.Font {
	r.mustBeLoaded()
	if f, ok := r.fonts[role]; ok {
		return f
	}
	return r.fonts[Body]
}

// Face returns a new face for role at size pixels. Faces keep glyph caches
// and are not safe for concurrent use, so each caller gets its own.
func (r *Registry) Face(role Role, size float64) font.Face {
	return truetype.NewFace(r.Font(role), &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Family returns the canvas font family for role.
func (r *Registry) Family(role Role) *canvas.FontFamily {
	r.mustBeLoaded()
	if f, ok := r.families[role]; ok {
		return f
	}
	return r.families[Body]
}

func (r *Registry) mustBeLoaded() {
	select {
	case <-r.done:
		if r.err != nil {
			panic(fmt.Sprintf("fonts: registry failed to load: %v", r.err))
		}
	default:
		panic("fonts: registry used before Ready")
	}
}
