package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "rewrite golden files")

const levelFile = "testdata/level.yaml"

// run executes the CLI in-process and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := newApp()
	cmd := a.root()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// runJSON executes a command and decodes the JSON envelope.
func runJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, _, _ := run(t, args...)
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result), "invalid JSON output: %s", stdout)
	return result
}

// assertGolden compares got with testdata/golden/<name>, printing a unified
// diff on mismatch.
func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", "golden", name)
	if *update {
		require.NoError(t, os.WriteFile(path, []byte(got), 0o644))
		return
	}
	want, err := os.ReadFile(path)
	require.NoError(t, err)
	if string(want) == got {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(want)),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	require.NoError(t, err)
	t.Errorf("output differs from %s:\n%s", path, diff)
}

func results(t *testing.T, result map[string]any) []map[string]any {
	t.Helper()
	raw, ok := result["results"].([]any)
	require.True(t, ok, "results should be a list: %v", result)
	out := make([]map[string]any, len(raw))
	for i, r := range raw {
		out[i] = r.(map[string]any)
	}
	return out
}

func ids(rows []map[string]any) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i], _ = r["id"].(string)
	}
	return out
}

// --- Golden text output ---

func TestGolden_Descendants(t *testing.T) {
	t.Parallel()
	stdout, _, err := run(t, "descendants", levelFile, "--format", "text")
	require.NoError(t, err)
	assertGolden(t, "descendants.txt", stdout)
}

func TestGolden_ChildrenByLayerLabel(t *testing.T) {
	t.Parallel()
	stdout, _, err := run(t, "children", levelFile, "--layer", "Enemies", "--format", "text")
	require.NoError(t, err)
	assertGolden(t, "children_layer_enemies.txt", stdout)
}

func TestGolden_Layers(t *testing.T) {
	t.Parallel()
	stdout, _, err := run(t, "layers", levelFile, "--format", "text")
	require.NoError(t, err)
	assertGolden(t, "layers.txt", stdout)
}

func TestGolden_CollidersDisable(t *testing.T) {
	t.Parallel()
	stdout, _, err := run(t, "colliders", levelFile, "--tag", "Enemy", "--disable", "--format", "text")
	require.NoError(t, err)
	assertGolden(t, "colliders_disable_enemy_tag.txt", stdout)
}

// --- JSON envelope ---

func TestDescendants_JSON(t *testing.T) {
	t.Parallel()
	result := runJSON(t, "descendants", levelFile)

	assert.Equal(t, "descendants", result["command"])
	assert.Empty(t, result["error"])
	assert.Equal(t, float64(5), result["total_count"])
	assert.Equal(t, []string{"A", "D", "B", "C", "HUD"}, ids(results(t, result)))
}

func TestDescendants_Filters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"name", []string{"--name", "enemy"}, []string{"A", "D", "C"}},
		{"name glob", []string{"--name-glob", "*o*"}, []string{"B"}},
		{"tag", []string{"--tag", "Enemy"}, []string{"A", "C"}},
		{"layer label", []string{"--layer", "Enemies"}, []string{"A", "D", "B"}},
		{"layer index", []string{"--layer", "3"}, []string{"C"}},
		{"unknown layer label", []string{"--layer", "Nowhere"}, []string{}},
		{"tag and layer", []string{"--tag", "Enemy", "--layer", "Enemies"}, []string{"A"}},
		{"component", []string{"--component", "Collider"}, []string{"A", "C"}},
		{"where", []string{"--where", `node["active"] == false`}, []string{"B"}},
		{"where has", []string{"--where", `has("Health") && node["depth"] == 2`}, []string{"D"}},
		{"from", []string{"--from", "enemy"}, []string{"D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args := append([]string{"descendants", levelFile}, tt.args...)
			result := runJSON(t, args...)
			require.Empty(t, result["error"])
			assert.Equal(t, tt.want, ids(results(t, result)))
		})
	}
}

func TestChildren_ComponentValues(t *testing.T) {
	t.Parallel()
	result := runJSON(t, "children", levelFile, "--component", "Health")
	rows := results(t, result)
	require.Len(t, rows, 1)
	assert.Equal(t, "Level/enemy", rows[0]["path"])
	assert.Equal(t, "Health", rows[0]["kind"])
	value := rows[0]["value"].(map[string]any)
	assert.Equal(t, float64(10), value["hp"])
}

func TestDescendants_ComponentResultsCarryNodeIDs(t *testing.T) {
	t.Parallel()
	rows := results(t, runJSON(t, "descendants", levelFile, "--component", "Collider"))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"A", "C"}, ids(rows))
	assert.Equal(t, "capsule", rows[0]["value"].(map[string]any)["shape"])
	assert.Equal(t, "box", rows[1]["value"].(map[string]any)["shape"])
}

func TestDescendants_SeedZeroIsReproducible(t *testing.T) {
	t.Parallel()
	args := []string{"descendants", levelFile, "--shuffle", "--seed", "0"}
	first := ids(results(t, runJSON(t, args...)))
	for range 10 {
		assert.Equal(t, first, ids(results(t, runJSON(t, args...))))
	}
}

func TestFilterFlags_SeedZeroCountsAsGiven(t *testing.T) {
	t.Parallel()

	parse := func(args ...string) *filterFlags {
		var f filterFlags
		cmd := &cobra.Command{Use: "q"}
		f.register(cmd)
		require.NoError(t, cmd.ParseFlags(args))
		return &f
	}

	draw := func(f *filterFlags) []uint64 {
		rng := f.rng()
		out := make([]uint64, 4)
		for i := range out {
			out[i] = rng.Uint64()
		}
		return out
	}

	assert.Equal(t, draw(parse("--seed", "0")), draw(parse("--seed", "0")))
	assert.False(t, parse().flags.Changed("seed"))
	assert.True(t, parse("--seed", "0").flags.Changed("seed"))
}

func TestDescendants_SampleIsSeeded(t *testing.T) {
	t.Parallel()
	first := ids(results(t, runJSON(t, "descendants", levelFile, "--shuffle", "--sample", "3", "--seed", "42")))
	second := ids(results(t, runJSON(t, "descendants", levelFile, "--shuffle", "--sample", "3", "--seed", "42")))

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Subset(t, []string{"A", "D", "B", "C", "HUD"}, first)
}

func TestErrors_JSONEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"missing file", []string{"descendants", "testdata/missing.yaml"}, "no such file"},
		{"unknown component", []string{"descendants", levelFile, "--component", "Sword"}, "unknown component kind"},
		{"bad from", []string{"children", levelFile, "--from", "nope"}, "no node at path"},
		{"non-bool where", []string{"descendants", levelFile, "--where", `node["name"]`}, "must evaluate to a bool"},
		{"unsupported file", []string{"tree", "testdata/golden/layers.txt"}, "unsupported file type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stdout, _, err := run(t, tt.args...)
			require.Error(t, err)
			var result map[string]any
			require.NoError(t, json.Unmarshal([]byte(stdout), &result))
			assert.Equal(t, tt.args[0], result["command"])
			assert.Contains(t, result["error"], tt.errMsg)
		})
	}
}

func TestErrors_TextGoesToStderr(t *testing.T) {
	t.Parallel()
	stdout, stderr, err := run(t, "descendants", levelFile, "--component", "Sword", "--format", "text")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unknown component kind")
}

func TestInvalidFormat(t *testing.T) {
	t.Parallel()
	_, _, err := run(t, "layers", levelFile, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

// --- Other commands ---

func TestTree_Text(t *testing.T) {
	t.Parallel()
	stdout, _, err := run(t, "tree", levelFile, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Level")
	assert.Contains(t, stdout, "Boss")
	assert.Contains(t, stdout, "(inactive)")
}

func TestTree_JSON(t *testing.T) {
	t.Parallel()
	result := runJSON(t, "tree", levelFile)
	root := result["results"].(map[string]any)
	assert.Equal(t, "Level", root["name"])
	children := root["children"].([]any)
	require.Len(t, children, 4)
	first := children[0].(map[string]any)
	assert.Equal(t, "Enemies", first["layer"])
	assert.Len(t, first["children"], 1)
	assert.Equal(t, float64(6), result["total_count"])
}

func TestAnimate(t *testing.T) {
	t.Parallel()
	result := runJSON(t, "animate", levelFile, "--time", "0")
	rows := results(t, result)
	require.Len(t, rows, 2)

	assert.Equal(t, "Level/enemy", rows[0]["path"])
	assert.Equal(t, "Transform", rows[0]["kind"])
	// amplitude 1, speed 2, base 2: 2 + sin(1)
	assert.InDelta(t, 2.8414709848, rows[0]["y"], 1e-6)

	assert.Equal(t, "Level/hud", rows[1]["path"])
	assert.Equal(t, "RectTransform", rows[1]["kind"])
	// amplitude 30, base 120: 120 + 30*sin(30)
	assert.InDelta(t, 120+30*-0.9880316241, rows[1]["y"], 1e-6)
}

func TestColliders_MissingColliderIsLoggedAndSkipped(t *testing.T) {
	t.Parallel()
	stdout, stderr, err := run(t, "colliders", levelFile, "--disable", "--name", "enemy")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	rows := results(t, result)
	require.Len(t, rows, 3)
	assert.Equal(t, true, rows[0]["found"])
	assert.Equal(t, false, rows[1]["found"])
	assert.Equal(t, "Level/enemy/enemy", rows[1]["path"])
	assert.Contains(t, stderr, "node has no collider")
}

func TestColliders_RequiresDirection(t *testing.T) {
	t.Parallel()
	_, _, err := run(t, "colliders", levelFile)
	require.Error(t, err)
}

func TestSyntaxFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc Run() {}\n\nfunc Stop() {}\n"), 0o644))

	result := runJSON(t, "children", path, "--tag", "function_declaration")
	rows := results(t, result)
	require.Len(t, rows, 2)
	assert.Equal(t, "Run", rows[0]["name"])
	assert.Equal(t, "Stop", rows[1]["name"])
}
