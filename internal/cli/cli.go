package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/autobrr/go-h264info/internal/h264meta"
)

const (
	exitOK    = 0
	exitError = 1
)

type Options struct {
	Full      bool
	Output    string
	LogFile   string
	Bom       bool
	All       bool
	PicTiming bool
	Verbose   bool
}

// EnvDefaults are the H264INFO_* environment overrides applied before
// flag parsing.
type EnvDefaults struct {
	Output    string `default:"Text"`
	All       bool   `default:"false"`
	PicTiming bool   `default:"false" envconfig:"PICTIMING"`
	Verbose   bool   `default:"false"`
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return exitError
	}

	program := programName(args[0])

	var env EnvDefaults
	if err := envconfig.Process("h264info", &env); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}
	opts := Options{
		Output:    env.Output,
		All:       env.All,
		PicTiming: env.PicTiming,
		Verbose:   env.Verbose,
	}
	files := make([]string, 0)

	for i := 1; i < len(args); i++ {
		original := args[i]
		normalized := normalizeArg(original)

		switch {
		case normalized == "--full" || normalized == "-f":
			opts.Full = true
		case normalized == "--all" || normalized == "-a":
			opts.All = true
		case normalized == "--pictiming":
			opts.PicTiming = true
		case normalized == "--verbose" || normalized == "-v":
			opts.Verbose = true
		case normalized == "--help" || normalized == "-h":
			Help(program, stdout)
			return exitOK
		case strings.HasPrefix(normalized, "--output="):
			if value, ok := valueAfterEqual(original); ok {
				opts.Output = value
			} else {
				HelpOutput(program, stdout)
				return exitError
			}
		case strings.HasPrefix(normalized, "--logfile"):
			opts.LogFile = valueAfterLogfile(original)
		case normalized == "--bom":
			opts.Bom = true
		case normalized == "--version":
			Version(stdout)
			return exitOK
		case strings.HasPrefix(normalized, "--"):
			if normalized == "--" {
				continue
			}
			fmt.Fprintf(stderr, "unknown option: %s\n", original)
			return exitError
		default:
			files = append(files, original)
		}
	}

	if len(files) == 0 {
		HelpNothing(program, stdout)
		return exitError
	}

	if opts.Bom {
		writeBOM(stdout, stderr)
	}

	output, filesCount, err := runCore(opts, files, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}

	if output != "" {
		fmt.Fprintln(stdout, output)
	}

	if opts.LogFile != "" {
		if err := writeLogFile(opts.LogFile, output, opts.Bom); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return exitError
		}
	}

	if filesCount > 0 {
		return exitOK
	}

	return exitError
}

func programName(arg0 string) string {
	name := filepath.Base(arg0)
	if runtime.GOOS == "windows" {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func normalizeArg(arg string) string {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		eq = len(arg)
	}

	lower := strings.ToLower(arg[:eq])
	return lower + arg[eq:]
}

func valueAfterEqual(arg string) (string, bool) {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		return "", false
	}
	return arg[eq+1:], true
}

func valueAfterLogfile(arg string) string {
	if len(arg) <= 10 {
		return ""
	}
	return arg[10:]
}

func writeBOM(stdout, stderr io.Writer) {
	if runtime.GOOS != "windows" {
		return
	}

	bom := []byte{0xEF, 0xBB, 0xBF}
	_, _ = stdout.Write(bom)
	_, _ = stderr.Write(bom)
}

func writeLogFile(path, output string, includeBOM bool) error {
	data := []byte(output)
	if includeBOM && runtime.GOOS == "windows" {
		data = append([]byte{0xEF, 0xBB, 0xBF}, data...)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	return nil
}

func runCore(opts Options, files []string, stderr io.Writer) (string, int, error) {
	if opts.Output != "" && !strings.EqualFold(opts.Output, "Text") && !strings.EqualFold(opts.Output, "JSON") {
		return "", 0, fmt.Errorf("output format not implemented: %s", opts.Output)
	}

	coreOpts := h264meta.Options{
		ExtractAll:         opts.All,
		ParsePictureTiming: opts.PicTiming,
	}
	if opts.Verbose {
		log, flush := newDiagnosticLogger(stderr)
		defer flush()
		coreOpts.Diagnostics = h264meta.ZapDiagnostics{Log: log}
	}

	reports, count, err := h264meta.AnalyzeFilesWithOptions(files, coreOpts)
	if err != nil {
		return "", 0, err
	}

	if strings.EqualFold(opts.Output, "JSON") {
		return h264meta.RenderJSON(reports), count, nil
	}
	return h264meta.RenderText(reports), count, nil
}

// newDiagnosticLogger builds a console zap logger on stderr at debug
// level for --verbose runs.
func newDiagnosticLogger(stderr io.Writer) (*zap.SugaredLogger, func()) {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(stderr),
		zapcore.DebugLevel,
	)
	log := zap.New(core)
	return log.Sugar(), func() { _ = log.Sync() }
}
