package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	// For Android, use the external storage Downloads directory
	// Check multiple ways to detect Android environment
	isAndroid := runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		os.Getenv("ANDROID_STORAGE") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so" // Fyne Android apps run as libdist.so

	if isAndroid {
		// External storage stays visible to file managers under Scoped Storage
		return "/sdcard/Download", nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, "Downloads"), nil
}

// OpenDirectoryInManager opens the directory in the system file manager
func OpenDirectoryInManager(dirPath string) error {
	if _, err := os.Stat(dirPath); err != nil {
		return fmt.Errorf("directory does not exist: %v", err)
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, absPath).Run()
	case OSLinux:
		return openDirectoryLinux(absPath)
	case OSAndroid:
		return openDirectoryAndroid(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openDirectoryLinux opens a directory on Linux
func openDirectoryLinux(dirPath string) error {
	// Try xdg-open first (most common)
	if err := exec.Command(XDGOpenCommand, dirPath).Run(); err == nil {
		return nil
	}

	// Fallback to common file managers
	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dirPath).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// openDirectoryAndroid opens a directory in a file manager on Android
func openDirectoryAndroid(dirPath string) error {
	// Strategy 1: Open the Downloads documents root (most reliable)
	cmd := exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", "content://com.android.externalstorage.documents/root/primary/Download")
	if err := cmd.Run(); err == nil {
		return nil
	}

	// Strategy 2: Open the directory itself
	cmd = exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", "file://"+dirPath)
	if err := cmd.Run(); err == nil {
		return nil
	}

	// Strategy 3: Fall back to storage settings, which every device has
	cmd = exec.Command("am", "start", "-a", "android.settings.INTERNAL_STORAGE_SETTINGS")
	if err := cmd.Run(); err == nil {
		return nil
	}

	return fmt.Errorf("failed to open directory: no suitable file manager found")
}
