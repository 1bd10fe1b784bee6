package descriptor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/gooey-ui/gooey/internal/css"
	"github.com/gooey-ui/gooey/internal/logger"
	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

// Loader fetches and validates component descriptors and loads their theme
// stylesheets and templates. Compiled theme CSS is cached per
// {componentPath}/{themeName} so repeated activations across instances
// share one compiled object.
type Loader struct {
	fetcher Fetcher
	log     *logger.Logger

	mu       sync.Mutex
	cssCache map[string]*css.Stylesheet
}

// NewLoader constructs a Loader over the given fetcher.
func NewLoader(fetcher Fetcher, log *logger.Logger) *Loader {
	return &Loader{
		fetcher:  fetcher,
		log:      log,
		cssCache: make(map[string]*css.Stylesheet),
	}
}

// Load fetches and parses the descriptor document at {path}/component.yaml.
// Pure I/O and parse; validation is a separate step.
func (l *Loader) Load(ctx context.Context, componentPath string) (*Document, error) {
	docPath := componentPath + "/" + DescriptorFile

	data, err := l.fetcher.Fetch(ctx, docPath)
	if err != nil {
		return nil, gooeyerrors.NewNotFoundError(docPath, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, gooeyerrors.NewEmptyDocumentError(docPath)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, gooeyerrors.NewMalformedDocumentError(docPath, err)
	}

	return &doc, nil
}

// Validate checks the document against the descriptor contract, collecting
// every violation. See package descriptor's Validate.
func (l *Loader) Validate(doc *Document, componentPath string) error {
	return Validate(doc, componentPath)
}

// LoadAndValidate is the composition the bootstrap loader uses: fetch,
// parse, validate, resolve into the immutable typed descriptor.
func (l *Loader) LoadAndValidate(ctx context.Context, componentPath string) (*Descriptor, error) {
	doc, err := l.Load(ctx, componentPath)
	if err != nil {
		return nil, err
	}
	if err := l.Validate(doc, componentPath); err != nil {
		return nil, err
	}
	resolved, err := Resolve(doc)
	if err != nil {
		return nil, err
	}
	l.log.WithComponent(resolved.TagName).Debug("descriptor loaded")
	return resolved, nil
}

// LoadThemeCSS fetches and compiles {path}/themes/{theme}.css, returning
// the cached compiled object on repeat calls.
func (l *Loader) LoadThemeCSS(ctx context.Context, componentPath, theme string) (*css.Stylesheet, error) {
	key := componentPath + "/" + theme

	l.mu.Lock()
	if sheet, ok := l.cssCache[key]; ok {
		l.mu.Unlock()
		return sheet, nil
	}
	l.mu.Unlock()

	data, err := l.fetcher.Fetch(ctx, componentPath+"/themes/"+theme+".css")
	if err != nil {
		return nil, gooeyerrors.NewThemeCSSNotFoundError(componentPath, theme, err)
	}

	sheet, err := css.Compile(string(data))
	if err != nil {
		return nil, fmt.Errorf("theme %s for %s: %w", theme, componentPath, err)
	}

	l.mu.Lock()
	// A racing load may have filled the slot; keep the first compiled object
	// so sharing by identity holds.
	if cached, ok := l.cssCache[key]; ok {
		sheet = cached
	} else {
		l.cssCache[key] = sheet
	}
	l.mu.Unlock()

	return sheet, nil
}

// LoadTemplate fetches one of a component's required markup fragments.
func (l *Loader) LoadTemplate(ctx context.Context, componentPath, file string) (string, error) {
	data, err := l.fetcher.Fetch(ctx, componentPath+"/"+file)
	if err != nil {
		return "", fmt.Errorf("template %s for %s: %w", file, componentPath, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("template %s for %s: empty fragment", file, componentPath)
	}
	return string(data), nil
}

// InjectCSS applies a compiled sheet to a style scope, using shared-sheet
// adoption when the scope supports it and literal injection otherwise. Both
// paths produce the same cascade.
func (l *Loader) InjectCSS(scope *css.Scope, sheet *css.Stylesheet) {
	scope.Inject(sheet)
}
