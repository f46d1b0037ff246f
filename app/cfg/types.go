package cfg

type Cfg struct {
	// Search-API tier
	SearchAPIKey   string
	SearchEndpoint string

	// Push channel
	PushSendKey  string
	PushEndpoint string

	// Mail channel
	EmailSender    string
	EmailPassword  string
	EmailRecipient string
	SMTPHost       string
	SMTPPort       int

	// Translation
	TranslateURL    string
	TranslateSource string
	TranslateTarget string

	// Acquisition policy
	RecencyHours int
	MaxPerSource int
	SourcesFile  string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

// MailRecipient defaults to the sender address when unset.
func (c *Cfg) MailRecipient() string {
	if c.EmailRecipient != "" {
		return c.EmailRecipient
	}
	return c.EmailSender
}

// TranslateEnabled reports whether a translation endpoint is configured.
func (c *Cfg) TranslateEnabled() bool {
	return c.TranslateURL != ""
}
