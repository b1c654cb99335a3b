package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(SetLanguage("en-US"))
	assert.Equal("halted", From("halted"))
	assert.Equal("address 5 outside of memory [0, 8)", From("address %d outside of memory [0, %d)", 5, 8))
}

func TestSetLanguage(t *testing.T) {
	assert := assert.New(t)

	saved := Language()
	defer use(saved)

	assert.NoError(SetLanguage("de-DE"))
	assert.Equal(language.MustParse("de-DE"), Language())
	assert.Equal("1.024 words", From("%d words", 1024))

	assert.NoError(SetLanguage("en-US"))
	assert.Equal("1,024 words", From("%d words", 1024))

	assert.Error(SetLanguage("not a language"))
	assert.Equal(language.AmericanEnglish, Language())
}
