package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/morphon/rule"
	"github.com/npillmayer/morphon/shape/shapelang"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "morphon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func derive(t *testing.T, sess *Session, word string) string {
	s, err := sess.Derive(word)
	require.NoError(t, err, word)
	sess.Forget()
	return s.String()
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "morphon", cmd.Use)
	for _, name := range []string{"apply", "repl", "rules"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
	for _, flag := range []string{"config", "trace", "mode"} {
		f := cmd.PersistentFlags().Lookup(flag)
		require.NotNil(t, f, flag)
		assert.Equal(t, "", f.DefValue)
	}
}

func TestLoadConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.cli")
	defer teardown()
	//
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	//
	cfg, err = LoadConfig(writeConfig(t, `
trace: Debug
mode: simultaneous
disabled: [ schwa-epenthesis, h-deletion ]
segments:
  x: "[-syl +cons -son -voice +cont place=dorsal]"
show_failures: true
`))
	require.NoError(t, err)
	assert.Equal(t, "Debug", cfg.Trace)
	assert.Equal(t, "simultaneous", cfg.Mode)
	assert.Equal(t, []string{"schwa-epenthesis", "h-deletion"}, cfg.Disabled)
	assert.Len(t, cfg.Segments, 1)
	assert.True(t, cfg.ShowFailures)
	sel := cfg.selector()
	assert.False(t, sel(&rule.Rule{Name: "h-deletion"}))
	assert.True(t, sel(&rule.Rule{Name: "final-devoicing"}))
	//
	_, err = LoadConfig(writeConfig(t, "mode: sometimes\n"))
	assert.Error(t, err)
	_, err = LoadConfig(writeConfig(t, "segments:\n  x: \"[+cons\"\n"))
	assert.Error(t, err)
	_, err = LoadConfig(writeConfig(t, "disabled: {\n"))
	assert.Error(t, err)
}

func TestDerivations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.cli")
	defer teardown()
	//
	sess, err := NewSession(nil)
	require.NoError(t, err)
	for _, tc := range []struct {
		word, surface string
	}{
		{"a h a", "a a"},               // h-deletion
		{"t a g", "t a k"},             // final devoicing
		{"k a b s", "k a p @ s"},       // assimilation, then epenthesis
		{"b e t a d", "b e t e t"},     // harmony and devoicing
		{"b e t a d a", "b e t e d e"}, // harmony spreads
		{"a d # a", "a t # a"},         // devoicing before a boundary
		{"m a n", "m a n"},             // sonorants are left alone
	} {
		assert.Equal(t, tc.surface, derive(t, sess, tc.word), tc.word)
	}
	_, err = sess.Derive("a q")
	assert.Error(t, err, "q is not in the inventory")
}

func TestModeOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.cli")
	defer teardown()
	//
	sess, err := NewSession(&Config{Mode: "simultaneous"})
	require.NoError(t, err)
	for _, rr := range sess.Rules() {
		assert.Equal(t, rule.Simultaneous, rr.Rule().Mode, rr.Rule().Name)
	}
	assert.Equal(t, "b e t e d a", derive(t, sess, "b e t a d a"), "harmony must not feed itself")
	_, err = NewSession(&Config{Mode: "sometimes"})
	assert.Error(t, err)
}

func TestDisabledRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.cli")
	defer teardown()
	//
	sess, err := NewSession(&Config{Disabled: []string{"final-devoicing", "schwa-epenthesis"}})
	require.NoError(t, err)
	assert.Equal(t, "t a g", derive(t, sess, "t a g"))
	assert.Equal(t, "k a p s", derive(t, sess, "k a b s"))
}

func TestConfigSegments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.cli")
	defer teardown()
	//
	sess, err := NewSession(&Config{Segments: map[string]string{
		"x": "[-syl +cons -son -voice +cont place=dorsal]",
		"y": "[-syl +cons -son +voice +cont place=dorsal]",
	}})
	require.NoError(t, err)
	assert.Equal(t, "a x", derive(t, sess, "a y"))
	_, err = NewSession(&Config{Segments: map[string]string{"x": "+cons"}})
	assert.Error(t, err)
}

func TestRelabel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.cli")
	defer teardown()
	//
	inv := baseInventory()
	assert.Equal(t, "p", symbolFor(inv, obstruent(feature.Minus, feature.Minus, "labial")))
	assert.Equal(t, "e", symbolFor(inv, vowel(feature.Minus, feature.Minus)))
	assert.Equal(t, "@", symbolFor(inv, schwa.Features))
	assert.Equal(t, "", symbolFor(inv, feature.Bundle{"syl": feature.Plus}))
	//
	s, err := shapelang.Parse("b a g", inv)
	require.NoError(t, err)
	ids := s.Nodes()
	s.Node(ids[0]).Features["voice"] = feature.Minus
	s.Node(ids[2]).Features["long"] = feature.Plus
	relabel(s, inv)
	assert.Equal(t, "p a g", s.String(), "segments without an inventory entry keep their label")
}

func TestDeriveRecordsRelabeledSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.cli")
	defer teardown()
	//
	sess, err := NewSession(&Config{Disabled: []string{"h-deletion"}})
	require.NoError(t, err)
	out, err := sess.Derive("t a g")
	require.NoError(t, err)
	assert.Equal(t, "t a k", out.String())
	applied := sess.display.Applied()
	require.Len(t, applied, 1)
	assert.Equal(t, "final-devoicing", applied[0].Rule.Name)
	assert.Equal(t, "t a g", applied[0].Input.String())
	assert.Equal(t, "t a k", applied[0].Output.String(), "recorded output should carry the new labels")
	events := sess.display.Events()
	require.Len(t, events, 5)
	assert.Equal(t, rule.RuleDisabledBySelector, events[0].Reason)
	assert.Equal(t, rule.SubruleMismatch, events[1].Reason)
	sess.Forget()
	assert.Equal(t, 0, sess.display.Len())
}

func TestApplyCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.cli")
	defer teardown()
	//
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"apply", "t a g", "k a b s"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "t a g ⇒ t a k\nk a b s ⇒ k a p @ s\n", buf.String())
	//
	cmd = NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"apply", "t a q"})
	assert.Error(t, cmd.Execute())
	//
	cmd = NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--mode", "never", "apply", "t a"})
	assert.Error(t, cmd.Execute())
}

func TestRulesCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.cli")
	defer teardown()
	//
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--config", writeConfig(t, "disabled: [ back-harmony ]\n"), "rules"})
	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "1. h-deletion [LtoR, iterative, [narrow]]\n")
	assert.Contains(t, out, "2. voicing-assimilation [RtoL, iterative, [feature]]\n")
	assert.Contains(t, out, "3. back-harmony [LtoR, iterative, [feature]] (disabled)\n")
	assert.Contains(t, out, "4. schwa-epenthesis [LtoR, iterative, [epenthesis]]\n")
	assert.Contains(t, out, "5. final-devoicing [LtoR, simultaneous, [feature]]\n")
}

func TestReplEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.cli")
	defer teardown()
	//
	opts := &RootOptions{}
	require.NoError(t, opts.setup())
	intp := &Intp{session: opts.Session(), rules: NewRulesCommand(opts)}
	assert.False(t, intp.Eval("t a g"))
	assert.Equal(t, 0, intp.session.display.Len(), "derivation should be cleared after rendering")
	assert.False(t, intp.Eval("t a q"))
	assert.False(t, intp.Eval(":rules"))
	assert.False(t, intp.Eval(":nonsense"))
	assert.True(t, intp.Eval(":quit"))
}
