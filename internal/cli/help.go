package cli

import (
	"fmt"
	"io"
)

func Help(program string, stdout io.Writer) {
	Version(stdout)
	fmt.Fprintf(stdout, "Usage: \"%s [-Options...] FileName1 [Filename2...]\"\n", program)
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Options:")
	fmt.Fprintln(stdout, "--Help, -h")
	fmt.Fprintln(stdout, "                    Display this help and exit")
	fmt.Fprintln(stdout, "--Version")
	fmt.Fprintln(stdout, "                    Display version information and exit")
	fmt.Fprintln(stdout, "--Full, -f")
	fmt.Fprintln(stdout, "                    Reserved (currently no-op)")
	fmt.Fprintln(stdout, "--All, -a")
	fmt.Fprintln(stdout, "                    Extract every occurrence of the metadata track, not just the first")
	fmt.Fprintln(stdout, "--PicTiming")
	fmt.Fprintln(stdout, "                    Decode SEI picture timing via VUI (experimental, best effort)")
	fmt.Fprintln(stdout, "--Verbose, -v")
	fmt.Fprintln(stdout, "                    Log every NAL unit encountered to stderr")
	fmt.Fprintln(stdout, "--Output=TEXT|JSON")
	fmt.Fprintln(stdout, "                    Select output format")
	fmt.Fprintln(stdout, "--LogFile=...")
	fmt.Fprintln(stdout, "                    Save the output in the specified file")
	fmt.Fprintln(stdout, "--BOM")
	fmt.Fprintln(stdout, "                    Byte order mark for UTF-8 output (Windows only)")
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Environment:")
	fmt.Fprintln(stdout, "H264INFO_OUTPUT, H264INFO_ALL, H264INFO_PICTIMING, H264INFO_VERBOSE")
	fmt.Fprintln(stdout, "                    Defaults for the matching options")
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Commands:")
	fmt.Fprintln(stdout, "completion           Generate the autocompletion script for the specified shell")
	fmt.Fprintln(stdout, "help                 Help about any command")
	fmt.Fprintln(stdout, "version              Print go-h264info version information")
	fmt.Fprintln(stdout, "update               Update h264info to latest version (release builds only)")
}

func HelpNothing(program string, stdout io.Writer) {
	fmt.Fprintf(stdout, "Usage: \"%s [-Options...] FileName1 [Filename2...]\"\n", program)
	fmt.Fprintf(stdout, "\"%s --help\" for displaying more information\n", program)
}

func HelpOutput(program string, stdout io.Writer) {
	fmt.Fprintln(stdout, "--Output=...  Select an output format")
	fmt.Fprintf(stdout, "Usage: \"%s --Output=JSON FileName\"\n", program)
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Supported formats: TEXT, JSON")
}
