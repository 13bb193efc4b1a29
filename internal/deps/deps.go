package deps

import (
	"os/exec"
	"strings"
)

// Status represents the installation status of an external tool
type Status struct {
	Installed bool
	Path      string
	Version   string
}

// check looks the binary up in PATH and captures the first line of its
// version output.
func check(binary string, versionArgs ...string) Status {
	path, err := exec.LookPath(binary)
	if err != nil {
		return Status{Installed: false}
	}

	status := Status{
		Installed: true,
		Path:      path,
	}

	cmd := exec.Command(path, versionArgs...)
	output, err := cmd.Output()
	if err == nil {
		lines := strings.Split(string(output), "\n")
		if len(lines) > 0 {
			status.Version = strings.TrimSpace(lines[0])
		}
	}

	return status
}

// CheckWhisperCli checks if whisper-cli (whisper.cpp) is installed
func CheckWhisperCli() Status {
	return check("whisper-cli", "--version")
}

// CheckFFmpeg checks if ffmpeg is installed
func CheckFFmpeg() Status {
	return check("ffmpeg", "-version")
}

// CheckFFprobe checks if ffprobe is installed
func CheckFFprobe() Status {
	return check("ffprobe", "-version")
}

// CheckYtDlp checks if yt-dlp is installed
func CheckYtDlp() Status {
	return check("yt-dlp", "--version")
}
