package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	flowsnap "github.com/deskdocs/flowsnap"
)

// doctorResult is everything a render run depends on, probed up front:
// the browser, the engine bundle, and the host it all runs on. Warnings
// keep Status at "warnings"; any error makes it "errors".
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Engine   engineInfo `json:"engine"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo describes the browser the session would launch with.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// engineInfo describes the mermaid bundle renders would inline.
type engineInfo struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
	Size  int64  `json:"size,omitempty"`
}

// envInfo describes the host: platform, container/CI signals, and the
// rod conventions in effect.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds host-side checks outside the browser and engine.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd probes the environment and reports. Exit code 0 covers
// ready-with-warnings; only hard errors exit non-zero, so CI can gate
// on doctor without tripping over advisory findings.
func runDoctorCmd(args []string, env *Environment) int {
	result := runDoctor()

	if slices.Contains(args, "--json") {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor runs every check against the live host.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEngine(result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome locates the browser the same way a render session would:
// ROD_BROWSER_BIN wins, then rod's own lookup across the usual install
// locations.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	// The version string doubles as a liveness check: a binary that
	// cannot print its version will not launch either.
	out, err := exec.Command(chromePath, "--version").Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEngine verifies the mermaid engine bundle is reachable.
// Honors FLOWSNAP_ENGINE; otherwise checks the node_modules default.
func checkEngine(result *doctorResult) {
	enginePath := os.Getenv("FLOWSNAP_ENGINE")
	if enginePath == "" {
		enginePath = flowsnap.DefaultEnginePath
	}
	result.Engine.Path = enginePath

	info, err := os.Stat(enginePath)
	if err != nil || info.IsDir() {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Engine bundle not found at %s. Run 'npm install mermaid', set FLOWSNAP_ENGINE, or pass --engine", enginePath))
		return
	}

	result.Engine.Found = true
	result.Engine.Size = info.Size()

	if info.Size() == 0 {
		result.Engine.Found = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Engine bundle at %s is empty", enginePath))
	}
}

// checkEnvironment flags container/CI hosts where the Chrome sandbox
// almost always fails to start.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer reports whether this process runs in a container and
// which signal said so. FLOWSNAP_CONTAINER=1 or =0 overrides detection
// either way; after that it checks Docker's /.dockerenv, the container=
// convention used by podman and systemd-nspawn, and the Kubernetes
// service host variable.
func isContainer() (bool, string) {
	switch os.Getenv("FLOWSNAP_CONTAINER") {
	case "1":
		return true, "FLOWSNAP_CONTAINER=1"
	case "0":
		return false, ""
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem probes the temp directory with a real write. Every render
// and export stages its ephemeral document there; a read-only temp dir
// fails all of them.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	probe := filepath.Join(tmpDir, "flowsnap-doctor-probe")
	if err := os.WriteFile(probe, []byte("probe"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(probe)
		result.System.TempWritable = true
	}
}

// printDoctorResult writes the human-readable report: one block per
// probe area, then warnings, errors, and a one-line verdict.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "flowsnap doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Rendering engine")
	if r.Engine.Found {
		fmt.Fprintf(w, "  [OK] Found at %s (%d bytes)\n", r.Engine.Path, r.Engine.Size)
	} else {
		fmt.Fprintf(w, "  [ERROR] Not found at %s\n", r.Engine.Path)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
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
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
