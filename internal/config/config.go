package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used by vCard imports.
var UserAgent = "Go-AddressBook/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go AddressBook"
	AppID             = "com.github.tartampluch.go-addressbook"
	KeyringService    = "com.github.tartampluch.go-addressbook"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvPrefix         = "ADDRESSBOOK"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1

	// Log rotation (lumberjack)
	LogMaxSizeMB  = 5
	LogMaxBackups = 3
	LogMaxAgeDays = 28
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdUse   = "go-addressbook"
	CmdShort = "Personal address book with upcoming birthday reminders"
	CmdLong  = "An interactive address book that stores names, phone numbers and birth dates " +
		"and reports which birthdays fall within the next seven days."

	FlagConfig     = "config"
	FlagVersion    = "version"
	FlagDebug      = "debug"
	FlagLang       = "lang"
	FlagServe      = "serve"
	FlagPort       = "port"
	FlagImport     = "import"
	FlagImportUser = "import-user"
	FlagWindowMode = "window-mode"

	FlagDescConfig     = "Path to an optional YAML settings file"
	FlagDescVersion    = "Show application version and exit"
	FlagDescDebug      = "Enable debug logging to stdout"
	FlagDescLang       = "Interface language (en, fr)"
	FlagDescServe      = "Serve the upcoming birthdays calendar over HTTP on localhost"
	FlagDescPort       = "Port of the calendar feed server"
	FlagDescImport     = "Path or http(s) URL of a .vcf file loaded at startup"
	FlagDescImportUser = "Basic auth user for URL imports (password read from the OS keyring)"
	FlagDescWindowMode = "Birthday window rule: anniversary or literal"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Settings Keys (viper)
// -----------------------------------------------------------------------------

const (
	SettingLanguage   = "language"
	SettingDebug      = "debug"
	SettingServe      = "serve"
	SettingPort       = "port"
	SettingWindowMode = "window_mode"
	SettingImport     = "import_source"
	SettingImportUser = "import_user"
	SettingsFileType  = "yaml"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort       = "18081"
	DefaultLanguage   = "en"
	DefaultWindowMode = WindowModeAnniversary
	DefaultLeapYear   = 2000 // Leap year fallback for dates like --02-29

	WindowModeAnniversary = "anniversary"
	WindowModeLiteral     = "literal"

	// UpcomingWindowDays is the length of the "next week" window, today included.
	UpcomingWindowDays = 7

	PhoneDigits = 10
	UIDSalt     = "go-addressbook-v1-" // Salt for deterministic UID generation
)

// -----------------------------------------------------------------------------
// Commands (interactive loop)
// -----------------------------------------------------------------------------

const (
	CmdHello        = "hello"
	CmdAdd          = "add"
	CmdChange       = "change"
	CmdPhone        = "phone"
	CmdAll          = "all"
	CmdAddBirthday  = "add-birthday"
	CmdShowBirthday = "show-birthday"
	CmdBirthdays    = "birthdays"
	CmdDelete       = "delete"
	CmdRemovePhone  = "remove-phone"
	CmdVCard        = "vcard"
	CmdImport       = "import"
	CmdCalendar     = "calendar"
	CmdHelp         = "help"
	CmdClose        = "close"
	CmdExit         = "exit"

	Prompt = "Enter a command: "
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome        = "welcome"
	TKeyHelp           = "help"
	TKeyGoodbye        = "goodbye"
	TKeyHello          = "hello"
	TKeyEnterCommand   = "enter_command"
	TKeyInvalidCommand = "invalid_command"

	TKeyContactAdded   = "contact_added"   // Requires Name
	TKeyContactChanged = "contact_changed" // Requires Name
	TKeyContactDeleted = "contact_deleted" // Requires Name
	TKeyPhoneRemoved   = "phone_removed"
	TKeyBirthdayAdded  = "birthday_added"
	TKeyBookEmpty      = "book_empty"
	TKeyBirthdayUnset  = "birthday_unset"
	TKeyImported       = "imported"   // Requires Count
	TKeyNoBirthdays    = "no_birthdays"
	TKeyBirthdayOn     = "birthday_on" // Requires Name, Date
	TKeyUpcomingHeader = "upcoming_header"

	TKeyErrValidation = "err_validation"
	TKeyErrNotFound   = "err_not_found"
	TKeyErrMissingArg = "err_missing_argument"
	TKeyErrPhoneNF    = "err_phone_not_found"
	TKeyErrImport     = "err_import"     // Requires Error
	TKeyErrUnexpected = "err_unexpected" // Requires Error

	TKeyUsageAdd         = "usage_add"
	TKeyUsageChange      = "usage_change"
	TKeyUsageAddBirthday = "usage_add_birthday"
	TKeyUsageRemovePhone = "usage_remove_phone"
	TKeyUsageImport      = "usage_import"

	TKeyDayMonday    = "day_monday"
	TKeyDayTuesday   = "day_tuesday"
	TKeyDayWednesday = "day_wednesday"
	TKeyDayThursday  = "day_thursday"
	TKeyDayFriday    = "day_friday"

	TKeyEvtSummary    = "event_summary"     // Requires Name
	TKeyEvtSummaryAge = "event_summary_age" // Requires Name, Age
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go AddressBook//Engine//EN"
	ICalCalName = "Upcoming birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardVersion = "4.0"

	DefaultICalRefresh = 1 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the canonical DD.MM.YYYY layout for user input and display.
	DateFormatBirthday = "02.01.2006"

	// Date layouts accepted in vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	FormatHashInput = "%s|%s"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"

	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrNameEmpty       = "name must not be empty"
	ErrPhoneFormat     = "phone number must be exactly 10 digits"
	ErrDateFormat      = "birth date must match DD.MM.YYYY"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortNumber      = "server port must be a number"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrWindowMode      = "window mode must be anniversary or literal"
	ErrLanguage        = "unsupported language"
	ErrSettingsRead    = "failed to read settings file"
	ErrSettingsDecode  = "failed to decode settings"
	ErrSourceEmpty     = "import source is empty"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrVCardEncode     = "failed to encode vCard"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrReadInput       = "failed to read input"
	ErrCalendarPublish = "failed to publish calendar"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary    = "Birthday: %s"
	FallbackSummaryAge = "Birthday: %s (%d)"
	FallbackName       = "Unknown"

	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgCtxCancel     = "Context cancelled, leaving command loop"
	MsgCommand       = "Command dispatched"
	MsgCommandFailed = "Command failed"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedPhone  = "Skipping invalid phone number"
	MsgImportDone    = "vCard import finished"
	MsgCalendarBuilt = "Calendar generation successful"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgSettingsFile  = "Settings file loaded"
	MsgBdayWindow    = "Upcoming birthdays computed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyCount     = "count"
	LogKeyWindow    = "window"
	LogKeyBuckets   = "buckets"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeySource    = "source"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompBook     = "addressbook"
	CompEngine   = "engine"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
