package config

// Config is a struct that holds configuration parameters for the package.
type Config struct {
	// ImportDir is the root directory holding new field-survey files.
	ImportDir string

	// WorkDir is a directory for temporary files (image thumbnails) and the
	// processed-file ledger.
	WorkDir string

	// JobsNum is a number of goroutines used to prefetch source files. The
	// plan-and-apply phase itself is strictly sequential.
	JobsNum int

	// MyHost is a host name for MySQL.
	MyHost string

	// MyUser is a user name for MySQL.
	MyUser string

	// MyPass is a password for MySQL.
	MyPass string

	// MyDB is a database name for MySQL.
	MyDB string

	// S3Bucket is the object-storage bucket for sample images.
	S3Bucket string

	// S3Region is the bucket's region.
	S3Region string

	// S3Folder is the key prefix for uploaded images.
	S3Folder string

	// S3PublicURL is the base URL under which uploaded images are served.
	S3PublicURL string

	// SMTPHost is the mail relay for run reports.
	SMTPHost string

	// SMTPPort is the mail relay port.
	SMTPPort int

	// MailFrom is the sender address of run reports.
	MailFrom string

	// MailTo lists the recipients of run reports.
	MailTo []string

	// CacheURL is the endpoint invalidated after a taxonomy replace-all.
	CacheURL string
}

// Option type allows to change settings for Config.
type Option func(*Config)

// OptImportDir sets the import root directory.
func OptImportDir(d string) Option {
	return func(cfg *Config) {
		cfg.ImportDir = d
	}
}

// OptWorkDir sets the working directory.
func OptWorkDir(d string) Option {
	return func(cfg *Config) {
		cfg.WorkDir = d
	}
}

// OptJobsNum sets parallelism number for file prefetching.
func OptJobsNum(j int) Option {
	return func(cfg *Config) {
		cfg.JobsNum = j
	}
}

// OptMyHost sets host for MySQL
func OptMyHost(h string) Option {
	return func(cfg *Config) {
		cfg.MyHost = h
	}
}

// OptMyUser sets user for MySQL
func OptMyUser(u string) Option {
	return func(cfg *Config) {
		cfg.MyUser = u
	}
}

// OptMyPass sets password for MySQL
func OptMyPass(p string) Option {
	return func(cfg *Config) {
		cfg.MyPass = p
	}
}

// OptMyDB sets database name for MySQL
func OptMyDB(d string) Option {
	return func(cfg *Config) {
		cfg.MyDB = d
	}
}

// OptS3Bucket sets the image bucket.
func OptS3Bucket(b string) Option {
	return func(cfg *Config) {
		cfg.S3Bucket = b
	}
}

// OptS3Region sets the image bucket region.
func OptS3Region(r string) Option {
	return func(cfg *Config) {
		cfg.S3Region = r
	}
}

// OptS3Folder sets the image key prefix.
func OptS3Folder(f string) Option {
	return func(cfg *Config) {
		cfg.S3Folder = f
	}
}

// OptS3PublicURL sets the public base URL for images.
func OptS3PublicURL(u string) Option {
	return func(cfg *Config) {
		cfg.S3PublicURL = u
	}
}

// OptSMTPHost sets the mail relay host.
func OptSMTPHost(h string) Option {
	return func(cfg *Config) {
		cfg.SMTPHost = h
	}
}

// OptSMTPPort sets the mail relay port.
func OptSMTPPort(p int) Option {
	return func(cfg *Config) {
		cfg.SMTPPort = p
	}
}

// OptMailFrom sets the report sender address.
func OptMailFrom(f string) Option {
	return func(cfg *Config) {
		cfg.MailFrom = f
	}
}

// OptMailTo sets the report recipients.
func OptMailTo(to []string) Option {
	return func(cfg *Config) {
		cfg.MailTo = to
	}
}

// OptCacheURL sets the cache-invalidation endpoint.
func OptCacheURL(u string) Option {
	return func(cfg *Config) {
		cfg.CacheURL = u
	}
}

// New creates a new Config with default values overridden by options.
func New(opts ...Option) Config {
	cfg := Config{
		ImportDir: "/var/springsync/new",
		WorkDir:   "/tmp/springsync",
		JobsNum:   4,
		MyHost:    "localhost",
		MyUser:    "root",
		MyDB:      "springs",
		S3Region:  "us-east-1",
		SMTPPort:  25,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
