package navgraph

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/navigation"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Labels localizes destination labels from TOML message files named after
// their language, such as active.en.toml or screens.fr.toml.
type Labels struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

// NewLabels creates an empty catalog whose fallback language is defaultLang.
func NewLabels(defaultLang language.Tag) *Labels {
	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return &Labels{bundle: bundle, defaultLang: defaultLang}
}

// LoadMessageFile adds the messages in the file at path.
func (l *Labels) LoadMessageFile(path string) error {
	if _, err := l.bundle.LoadMessageFile(path); err != nil {
		return fmt.Errorf("navgraph: loading messages: %w", err)
	}
	return nil
}

// AddMessages adds messages from data. name is only used for its language
// and format, as in LoadMessageFile.
func (l *Labels) AddMessages(data []byte, name string) error {
	if _, err := l.bundle.ParseMessageFileBytes(data, name); err != nil {
		return fmt.Errorf("navgraph: parsing %s: %w", name, err)
	}
	return nil
}

// Languages returns the languages with at least one message.
func (l *Labels) Languages() []language.Tag {
	return l.bundle.LanguageTags()
}

// Localizer returns a localizer preferring langs in order. Each entry may be
// a language tag or an Accept-Language value.
func (l *Labels) Localizer(langs ...string) *Localizer {
	return &Localizer{
		localizer: i18n.NewLocalizer(l.bundle, langs...),
		fallback:  i18n.NewLocalizer(l.bundle, l.defaultLang.String()),
	}
}

// Localizer resolves labels for one set of preferred languages.
type Localizer struct {
	localizer *i18n.Localizer
	fallback  *i18n.Localizer
}

// Label returns dest's label in the preferred language. The destination's
// default arguments are available to the message as template data.
// Messages missing from the preferred languages come from the default
// language; labels without any message are returned as is.
func (l *Localizer) Label(dest *navigation.Destination) string {
	if dest == nil || dest.Label == "" {
		return ""
	}
	config := &i18n.LocalizeConfig{
		MessageID:    dest.Label,
		TemplateData: map[string]any(dest.Defaults),
	}

	text, err := l.localizer.Localize(config)
	var notFound *i18n.MessageNotFoundErr
	if errors.As(err, &notFound) {
		text, err = l.fallback.Localize(config)
	}
	if err != nil {
		return dest.Label
	}
	return text
}
