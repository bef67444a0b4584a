package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golang.org/x/text/language"
)

func TestResolvePosixLocales(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"zh_CN.UTF-8", language.SimplifiedChinese},
		{"zh_CN", language.SimplifiedChinese},
		{"en_US.UTF-8", language.English},
		{"en_GB", language.English},
		{"C", language.English},
		{"POSIX", language.English},
		{"", language.English},
		{"de_DE.UTF-8", language.English},
		{"garbage!!", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.locale).Lang())
		})
	}
}

func TestTranslateFormatsArguments(t *testing.T) {
	en := Resolve("en_US.UTF-8")
	assert.Equal(t, "Skipped: a.txt", en.T("skipped", "a.txt"))

	zh := Resolve("zh_CN.UTF-8")
	assert.Equal(t, "已跳过: a.txt", zh.T("skipped", "a.txt"))
}

func TestTranslateFallsBackToKey(t *testing.T) {
	m := Resolve("zh_CN.UTF-8")
	assert.Equal(t, "no_such_key", m.T("no_such_key"))
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	en := catalog[language.English]
	zh := catalog[language.SimplifiedChinese]
	for key := range en {
		assert.Contains(t, zh, key)
	}
	for key := range zh {
		assert.Contains(t, en, key)
	}
}
