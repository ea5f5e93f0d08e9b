package classify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstMatchWins(t *testing.T) {
	c := New([]Rule{{"地科", "地球科學"}, {"地", "地理"}}, "")
	assert.Equal(t, "地球科學", c.Category("地科生態"))

	reversed := New([]Rule{{"地", "地理"}, {"地科", "地球科學"}}, "")
	assert.Equal(t, "地理", reversed.Category("地科生態"))
}

func TestDefaultRules(t *testing.T) {
	c := Default()
	cases := []struct{ label, want string }{
		{"數學乙", "數學"},
		{"英語聽講", "英文"},
		{"本土語", "本土語"},
		{"閩南語", "本土語"},
		{"地科", "地球科學"},
		{"地理", "地理"},
		{"藝術生活", "藝術與生活"},
		{"生活科技", "生活科技"},
		{"全民國防", "全民國防"},
		{"彈性學習", Fallback},
		{"多元選修A", "多元選修"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Category(tc.label), tc.label)
	}
}

func TestDefaultRulesOrderIsPinned(t *testing.T) {
	rules := DefaultRules()
	pos := func(kw string) int {
		for i, r := range rules {
			if r.Keyword == kw {
				return i
			}
		}
		t.Fatalf("keyword %s missing", kw)
		return -1
	}
	assert.Less(t, pos("英語"), pos("語"))
	assert.Less(t, pos("地科"), pos("地理"))
	assert.Less(t, pos("生活"), pos("科技"))
	assert.Equal(t, "國文", rules[0].Keyword)
	assert.Equal(t, "多元選修", rules[len(rules)-1].Keyword)
}

func TestFallbackOverride(t *testing.T) {
	c := New(nil, "未分類")
	assert.Equal(t, "未分類", c.Category("任何"))
	var nilC *Classifier
	assert.Equal(t, Fallback, nilC.Category("數學"))
}

func TestRulesReturnsCopy(t *testing.T) {
	c := Default()
	r := c.Rules()
	r[0].Category = "changed"
	assert.Equal(t, "國文", c.Category("國文"))
}

func TestLoadRulesYAMLKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `fallback: 其他
rules:
  - keyword: 地
    category: 地理
  - keyword: 地科
    category: 地球科學
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	rf, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rf.Rules, 2)
	assert.Equal(t, "地", rf.Rules[0].Keyword)
	assert.Equal(t, "地理", New(rf.Rules, rf.Fallback).Category("地科生態"))
}

func TestDecodeRulesErrors(t *testing.T) {
	_, err := DecodeRules(strings.NewReader(`{"rules":[{"keyword":""}]}`), "json")
	assert.Error(t, err)
	_, err = DecodeRules(strings.NewReader(""), "toml")
	assert.Error(t, err)
	_, err = LoadRules("missing.yaml")
	assert.Error(t, err)
}
