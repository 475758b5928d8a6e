package main

// Notes:
// - runDoctor probes the real host (Chrome lookup, temp dir), so tests
//   assert structure and the checks we control via env, not host state.
// - Tests mutating the environment use t.Setenv and stay sequential.

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckEngine(t *testing.T) {
	t.Run("env path with bundle present", func(t *testing.T) {
		dir := t.TempDir()
		engine := writeFile(t, dir, "mermaid.min.js", testEngineJS)
		t.Setenv("FLOWSNAP_ENGINE", engine)

		result := &doctorResult{}
		checkEngine(result)

		if !result.Engine.Found {
			t.Fatalf("engine not found; errors: %v", result.Errors)
		}
		if result.Engine.Path != engine {
			t.Errorf("path = %q, want %q", result.Engine.Path, engine)
		}
		if result.Engine.Size == 0 {
			t.Error("size should be non-zero")
		}
	})

	t.Run("missing bundle", func(t *testing.T) {
		t.Setenv("FLOWSNAP_ENGINE", filepath.Join(t.TempDir(), "absent.js"))

		result := &doctorResult{}
		checkEngine(result)

		if result.Engine.Found {
			t.Fatal("missing bundle reported as found")
		}
		if len(result.Errors) != 1 {
			t.Fatalf("errors = %v, want exactly one", result.Errors)
		}
		if !strings.Contains(result.Errors[0], "npm install mermaid") {
			t.Errorf("error should point at the npm install path: %q", result.Errors[0])
		}
	})

	t.Run("empty bundle", func(t *testing.T) {
		dir := t.TempDir()
		engine := writeFile(t, dir, "mermaid.min.js", "")
		t.Setenv("FLOWSNAP_ENGINE", engine)

		result := &doctorResult{}
		checkEngine(result)

		if result.Engine.Found {
			t.Fatal("empty bundle reported as found")
		}
		if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "is empty") {
			t.Errorf("errors = %v, want empty-bundle error", result.Errors)
		}
	})
}

func TestIsContainer(t *testing.T) {
	t.Run("forced on", func(t *testing.T) {
		t.Setenv("FLOWSNAP_CONTAINER", "1")
		got, hint := isContainer()
		if !got {
			t.Fatal("FLOWSNAP_CONTAINER=1 should force detection on")
		}
		if hint != "FLOWSNAP_CONTAINER=1" {
			t.Errorf("hint = %q", hint)
		}
	})

	t.Run("forced off", func(t *testing.T) {
		// Even if other signals fire on this host, "0" wins.
		t.Setenv("FLOWSNAP_CONTAINER", "0")
		t.Setenv("KUBERNETES_SERVICE_HOST", "10.0.0.1")
		got, hint := isContainer()
		if got {
			t.Fatal("FLOWSNAP_CONTAINER=0 should force detection off")
		}
		if hint != "" {
			t.Errorf("hint = %q, want empty", hint)
		}
	})

	t.Run("kubernetes signal", func(t *testing.T) {
		t.Setenv("FLOWSNAP_CONTAINER", "")
		t.Setenv("container", "")
		t.Setenv("KUBERNETES_SERVICE_HOST", "10.0.0.1")
		got, hint := isContainer()
		if !got {
			// A host without /.dockerenv must fall through to the k8s check.
			t.Fatal("KUBERNETES_SERVICE_HOST should trigger detection")
		}
		if hint != "KUBERNETES_SERVICE_HOST" && hint != "/.dockerenv" {
			t.Errorf("hint = %q", hint)
		}
	})
}

func TestCheckSystem(t *testing.T) {
	t.Parallel()

	result := &doctorResult{}
	checkSystem(result)

	if !result.System.TempWritable {
		t.Errorf("temp dir should be writable in tests; errors: %v", result.Errors)
	}
}

func TestRunDoctorCmd_JSON(t *testing.T) {
	dir := t.TempDir()
	engine := writeFile(t, dir, "mermaid.min.js", testEngineJS)
	t.Setenv("FLOWSNAP_ENGINE", engine)

	env, stdout, _ := testEnv(nil)
	runDoctorCmd([]string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout.String())
	}
	if result.Status == "" {
		t.Error("status missing from JSON output")
	}
	if !result.Engine.Found {
		t.Errorf("engine should be found; errors: %v", result.Errors)
	}
	if result.Env.OS == "" || result.Env.Arch == "" {
		t.Error("platform fields missing from JSON output")
	}
}

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	t.Run("all healthy", func(t *testing.T) {
		t.Parallel()
		r := &doctorResult{
			Status: "ready",
			Chrome: chromeInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 130.0", Sandbox: true},
			Engine: engineInfo{Found: true, Path: "/srv/mermaid.min.js", Size: 2048},
			Env:    envInfo{OS: "linux", Arch: "amd64"},
			System: systemInfo{TempWritable: true},
		}

		var buf bytes.Buffer
		printDoctorResult(&buf, r)
		out := buf.String()

		for _, want := range []string{
			"flowsnap doctor",
			"[OK] Found at /usr/bin/chromium",
			"[OK] Version: Chromium 130.0",
			"[OK] Sandbox: enabled",
			"[OK] Found at /srv/mermaid.min.js (2048 bytes)",
			"[OK] Platform: linux/amd64",
			"[OK] Temp directory: writable",
			"Status: Ready to render",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "[ERROR]") || strings.Contains(out, "[WARN]") {
			t.Errorf("healthy result should not print errors or warnings:\n%s", out)
		}
	})

	t.Run("errors and warnings", func(t *testing.T) {
		t.Parallel()
		r := &doctorResult{
			Status:   "errors",
			Engine:   engineInfo{Path: "/srv/mermaid.min.js"},
			Env:      envInfo{OS: "linux", Arch: "arm64", Container: true, ContainerHint: "/.dockerenv"},
			Warnings: []string{"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1"},
			Errors:   []string{"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN"},
		}

		var buf bytes.Buffer
		printDoctorResult(&buf, r)
		out := buf.String()

		for _, want := range []string{
			"[ERROR] Not found",
			"[ERROR] Not found at /srv/mermaid.min.js",
			"[OK] Container: detected (/.dockerenv)",
			"[WARN] Container/CI detected but ROD_NO_SANDBOX not set",
			"[ERROR] Chrome/Chromium not found",
			"Status: Not ready (see errors above)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}
