package cmd

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	springsync "github.com/springsdata/springsync/pkg"
	"github.com/springsdata/springsync/pkg/config"
)

//go:embed springsync.yaml
var configText string

var (
	opts []config.Option
)

type cfgData struct {
	ImportDir   string
	WorkDir     string
	JobsNum     int
	MyHost      string
	MyUser      string
	MyPass      string
	MyDB        string
	S3Bucket    string
	S3Region    string
	S3Folder    string
	S3PublicURL string
	SMTPHost    string
	SMTPPort    int
	MailFrom    string
	MailTo      []string
	CacheURL    string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "springsync",
	Short: "Reconciles field-survey data files with the springs database.",
	Long: `springsync picks up new field-survey files (feature and sample
descriptions, geochemistry workbooks, taxonomy workbooks, DNA sequences and
sample images), reconciles them with the springs database and reports the
outcome by email.`,
	Run: func(cmd *cobra.Command, args []string) {
		version, err := cmd.Flags().GetBool("version")
		if err != nil {
			slog.Error("Cannot get flag", "error", err)
			os.Exit(1)
		}
		if version {
			fmt.Printf("\nversion: %s\nbuild: %s\n\n",
				springsync.Version, springsync.Build)
			os.Exit(0)
		}

		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().BoolP("version", "V", false, "Returns version and build date")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error
	var homeDir, cfgDir string
	configFile := "springsync"

	homeDir, err = os.UserHomeDir()
	if err != nil {
		slog.Error("Cannot find home dir", "error", err)
		os.Exit(1)
	}
	cfgDir = filepath.Join(homeDir, ".config")

	viper.AddConfigPath(cfgDir)
	viper.SetConfigName(configFile)

	configPath := filepath.Join(cfgDir, fmt.Sprintf("%s.yaml", configFile))
	touchConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		slog.Error("Config file springsync.yaml not found", "error", err)
		os.Exit(1)
	}
	getOpts()
}

// getOpts imports data from the configuration file. Some of the settings can
// be overriden by command line flags.
func getOpts() []config.Option {
	cfg := cfgData{}
	err := viper.Unmarshal(&cfg)
	if err != nil {
		slog.Error("Cannot unmarshal config file", "error", err)
	}

	if cfg.ImportDir != "" {
		opts = append(opts, config.OptImportDir(cfg.ImportDir))
	}
	if cfg.WorkDir != "" {
		opts = append(opts, config.OptWorkDir(cfg.WorkDir))
	}
	if cfg.JobsNum != 0 {
		opts = append(opts, config.OptJobsNum(cfg.JobsNum))
	}
	if cfg.MyHost != "" {
		opts = append(opts, config.OptMyHost(cfg.MyHost))
	}
	if cfg.MyUser != "" {
		opts = append(opts, config.OptMyUser(cfg.MyUser))
	}
	if cfg.MyPass != "" {
		opts = append(opts, config.OptMyPass(cfg.MyPass))
	}
	if cfg.MyDB != "" {
		opts = append(opts, config.OptMyDB(cfg.MyDB))
	}
	if cfg.S3Bucket != "" {
		opts = append(opts, config.OptS3Bucket(cfg.S3Bucket))
	}
	if cfg.S3Region != "" {
		opts = append(opts, config.OptS3Region(cfg.S3Region))
	}
	if cfg.S3Folder != "" {
		opts = append(opts, config.OptS3Folder(cfg.S3Folder))
	}
	if cfg.S3PublicURL != "" {
		opts = append(opts, config.OptS3PublicURL(cfg.S3PublicURL))
	}
	if cfg.SMTPHost != "" {
		opts = append(opts, config.OptSMTPHost(cfg.SMTPHost))
	}
	if cfg.SMTPPort != 0 {
		opts = append(opts, config.OptSMTPPort(cfg.SMTPPort))
	}
	if cfg.MailFrom != "" {
		opts = append(opts, config.OptMailFrom(cfg.MailFrom))
	}
	if len(cfg.MailTo) > 0 {
		opts = append(opts, config.OptMailTo(cfg.MailTo))
	}
	if cfg.CacheURL != "" {
		opts = append(opts, config.OptCacheURL(cfg.CacheURL))
	}
	return opts
}

// touchConfigFile checks if config file exists, and if not, it gets created.
func touchConfigFile(configPath string) {
	fileExists, _ := gnsys.FileExists(configPath)
	if fileExists {
		return
	}

	slog.Info("Creating config file", "path", configPath)
	createConfig(configPath)
}

// createConfig creates config file.
func createConfig(path string) {
	err := gnsys.MakeDir(filepath.Dir(path))
	if err != nil {
		slog.Error("Cannot create config dir", "error", err)
		os.Exit(1)
	}

	err = os.WriteFile(path, []byte(configText), 0644)
	if err != nil {
		slog.Error("Cannot write to config file", "error", err)
		os.Exit(1)
	}
}
