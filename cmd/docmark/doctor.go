package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docmark/internal/assets"
	"github.com/alnah/go-docmark/internal/config"
	"github.com/alnah/go-docmark/internal/highlight"
	"github.com/alnah/go-docmark/internal/model"
	"github.com/alnah/go-docmark/internal/render"
)

// ErrDoctorFailed is returned when doctor finds errors.
var ErrDoctorFailed = errors.New("doctor found errors")

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Backends  []backendInfo `json:"backends"`
	Highlight highlightInfo `json:"highlight"`
	Styles    []string      `json:"styles"`
	Config    configInfo    `json:"config"`
	Env       envInfo       `json:"environment"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// backendInfo reports whether one markdown backend constructs.
type backendInfo struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// highlightInfo reports the chroma styles.
type highlightInfo struct {
	Style       string `json:"style"`
	StyleExists bool   `json:"style_exists"`
	Styles      int    `json:"styles"`
}

// configInfo reports the config file and its model.
type configInfo struct {
	Source   string `json:"source,omitempty"`
	Loaded   bool   `json:"loaded"`
	Format   string `json:"format"`
	Model    string `json:"model,omitempty"`
	Modules  int    `json:"modules"`
	Writable bool   `json:"output_writable"`
}

// envInfo holds platform information.
type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	GoMaxProcs int    `json:"gomaxprocs"`
}

// runDoctorCmd executes the doctor command.
// Warnings still succeed; errors return ErrDoctorFailed.
func runDoctorCmd(args []string, env *Environment) error {
	var (
		jsonOutput bool
		configName string
	)
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	fs.StringVarP(&configName, "config", "c", "", "config file name or path")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if isHelpRequest(err) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if configName == "" {
		configName = env.Getenv("DOCMARK_CONFIG")
	}

	result := runDoctor(render.Default(), configName)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ErrDoctorFailed
	}
	return nil
}

// runDoctor performs all diagnostic checks.
func runDoctor(registry *render.Registry, configName string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GoMaxProcs: runtime.GOMAXPROCS(0),
		},
	}

	cfg := checkConfig(result, configName)
	checkBackends(result, registry, cfg.Format)
	checkHighlight(result, cfg.Highlight.Style)
	checkStyles(result, cfg.Output.AssetPath)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig loads the config and its model. It returns the defaults
// when no config is named or loading fails.
func checkConfig(result *doctorResult, configName string) *config.Config {
	cfg := config.DefaultConfig()
	if configName != "" {
		result.Config.Source = configName
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		} else {
			cfg = loaded
			result.Config.Loaded = true
		}
	}
	result.Config.Format = cfg.Format

	if cfg.Model == "" {
		result.Warnings = append(result.Warnings, "No model configured; builds need --model")
	} else {
		result.Config.Model = cfg.Model
		project, err := model.Load(cfg.Model)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Model: %v", err))
		} else {
			result.Config.Modules = len(project.Modules)
		}
	}

	if cfg.Output.Dir != "" {
		result.Config.Writable = dirWritable(cfg.Output.Dir)
		if !result.Config.Writable {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Output directory not writable: %s", cfg.Output.Dir))
		}
	}

	return cfg
}

// checkBackends probes every registered backend.
func checkBackends(result *doctorResult, registry *render.Registry, format string) {
	available := 0
	for _, name := range registry.Names() {
		info := backendInfo{Name: name, Available: true}
		if err := registry.Probe(name); err != nil {
			info.Available = false
			info.Error = err.Error()
		} else {
			available++
		}
		result.Backends = append(result.Backends, info)

		if name == format && !info.Available {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Configured format %q is unavailable; another backend will be substituted", format))
		}
	}
	if available == 0 {
		result.Warnings = append(result.Warnings, "No markdown backend available; output will be plain text")
	}
}

// checkHighlight verifies the configured chroma style.
func checkHighlight(result *doctorResult, style string) {
	result.Highlight.Style = styleOrDefault(style)
	result.Highlight.StyleExists = highlight.StyleExists(result.Highlight.Style)
	result.Highlight.Styles = len(highlight.StyleNames())
	if !result.Highlight.StyleExists {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Highlight style %q not found; chroma's fallback style is used", result.Highlight.Style))
	}
}

// checkStyles lists the page styles and reports a broken asset path.
func checkStyles(result *doctorResult, assetPath string) {
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Asset path: %v", err))
		return
	}
	result.Styles = resolver.Names(assets.Style)
}

// dirWritable reports whether a file can be created in dir, creating dir if needed.
func dirWritable(dir string) bool {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".docmark-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(filepath.Clean(name))
	return true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "docmark doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Markdown backends")
	for _, b := range r.Backends {
		if b.Available {
			fmt.Fprintf(w, "  [OK] %s\n", b.Name)
		} else {
			fmt.Fprintf(w, "  [--] %s: %s\n", b.Name, b.Error)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Highlighting")
	fmt.Fprintf(w, "  [OK] %d chroma styles\n", r.Highlight.Styles)
	if r.Highlight.StyleExists {
		fmt.Fprintf(w, "  [OK] Style: %s\n", r.Highlight.Style)
	} else {
		fmt.Fprintf(w, "  [WARN] Style: %s (unknown)\n", r.Highlight.Style)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Page styles")
	for _, s := range r.Styles {
		fmt.Fprintf(w, "  [OK] %s\n", s)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.Config.Source == "" {
		fmt.Fprintln(w, "  [OK] Defaults (no config file)")
	} else if r.Config.Loaded {
		fmt.Fprintf(w, "  [OK] Loaded %s\n", r.Config.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Could not load %s\n", r.Config.Source)
	}
	fmt.Fprintf(w, "  [OK] Format: %s\n", r.Config.Format)
	if r.Config.Model != "" {
		fmt.Fprintf(w, "  [OK] Model: %s (%d modules)\n", r.Config.Model, r.Config.Modules)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] GOMAXPROCS: %d\n", r.Env.GoMaxProcs)
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to build")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
