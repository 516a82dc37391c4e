package pipelineconfig

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sermonpipe/internal/services"
)

//go:embed pipeline_schema.json
var embeddedSchema []byte

// EmbeddedSchema returns the schema compiled into the binary.
func EmbeddedSchema() []byte {
	return append([]byte(nil), embeddedSchema...)
}

// Load reads configPath, validates it against the schema at schemaPath, and
// applies the cross-field rules that hold regardless of media kind. An empty
// schemaPath, or the default path when that file is absent, selects the
// embedded schema.
func Load(configPath, schemaPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, services.Wrap(services.ErrConfigValidation, "config", "read", configPath, err)
	}
	schemaData, err := readSchema(schemaPath)
	if err != nil {
		return nil, err
	}
	return Parse(configPath, data, schemaData)
}

func readSchema(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return EmbeddedSchema(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultSchemaPath {
			return EmbeddedSchema(), nil
		}
		return nil, services.Wrap(services.ErrConfigValidation, "config", "read schema", path, err)
	}
	return data, nil
}

// schemaURL names the schema resource inside the compiler.
const schemaURL = "pipeline_schema.json"

var printer = message.NewPrinter(language.English)

// Parse validates a configuration document held in memory. name labels the
// document in error messages.
func Parse(name string, data, schemaData []byte) (*Config, error) {
	schema, err := compileSchema(schemaData)
	if err != nil {
		return nil, err
	}

	verr := &ValidationError{Path: name}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		verr.add("invalid JSON: %v", err)
		return nil, verr
	}
	if err := schema.Validate(instance); err != nil {
		var failure *jsonschema.ValidationError
		if !errors.As(err, &failure) {
			return nil, services.Wrap(services.ErrConfigValidation, "config", "validate", name, err)
		}
		for _, leaf := range leaves(failure) {
			verr.add("%s: %s", location(leaf.InstanceLocation), leaf.ErrorKind.LocalizedString(printer))
		}
	}

	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&cfg); err != nil {
		verr.add("decode: %v", err)
		return nil, verr
	}
	cfg.checkCrossFields(verr)

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateFor applies the rules that depend on which kind is being run.
func (c Config) ValidateFor(kind string) error {
	verr := &ValidationError{Path: kind}
	if c.ManualDownload && strings.TrimSpace(c.Media(kind).ManualFilePath) == "" {
		verr.add("%s.manual_file_path is required when manual_download is true", kind)
	}
	return verr.orNil()
}

func (c Config) checkCrossFields(verr *ValidationError) {
	if !c.ManualDownload && strings.TrimSpace(c.YouTubeURL) == "" {
		verr.add("youtube_url is required unless manual_download is true")
	}
	for _, kind := range []string{"audio", "video"} {
		trim := c.Media(kind).Trim
		if trim == nil {
			continue
		}
		start, startErr := ParseTimestamp(trim.StartTime)
		end, endErr := ParseTimestamp(trim.EndTime)
		if startErr != nil || endErr != nil {
			// Format problems are already reported by the schema.
			continue
		}
		if start >= end {
			verr.add("%s.trim.start_time %s must be before end_time %s", kind, trim.StartTime, trim.EndTime)
		}
	}
}

// ParseTimestamp converts HH:MM:SS into a duration.
func ParseTimestamp(value string) (time.Duration, error) {
	var h, m, s int
	if _, err := fmt.Sscanf(value, "%d:%d:%d", &h, &m, &s); err != nil {
		return 0, fmt.Errorf("timestamp %q: %w", value, err)
	}
	if h < 0 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, fmt.Errorf("timestamp %q out of range", value)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second, nil
}

func compileSchema(schemaData []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
	if err != nil {
		return nil, services.Wrap(services.ErrConfigValidation, "config", "parse schema", "", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, services.Wrap(services.ErrConfigValidation, "config", "load schema", "", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, services.Wrap(services.ErrConfigValidation, "config", "compile schema", "", err)
	}
	return schema, nil
}

// leaves returns the failures with no nested causes, which are the
// individual keyword violations under any $ref or combinator groupings.
func leaves(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var out []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		out = append(out, leaves(cause)...)
	}
	return out
}

func location(tokens []string) string {
	if len(tokens) == 0 {
		return "(root)"
	}
	return "/" + strings.Join(tokens, "/")
}
