package serialport

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// usbSerialSysfsRoot is where the kernel exposes every attached
// usb-serial adapter as a symlink to its tty device. Overridable in
// tests, which cannot rely on a real sysfs tree.
var usbSerialSysfsRoot = "/sys/bus/usb-serial/devices"

// comportEnvVar overrides the device-open collaborator's path-search
// list for the default controller with a colon-separated list of
// explicit device paths, bypassing USB enumeration entirely.
const comportEnvVar = "OPENFAN_COMPORT"

// Enumerate returns candidate device paths (e.g. "/dev/ttyUSB0") for a
// board identified by its USB vendor/product id pair. If comportEnvVar
// is set, its paths are returned unconditionally instead of scanning
// sysfs.
func Enumerate(vendorID, productID uint16) ([]string, error) {
	if override := os.Getenv(comportEnvVar); override != "" {
		return strings.Split(override, ":"), nil
	}

	entries, err := os.ReadDir(usbSerialSysfsRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("serialport: read %s: %w", usbSerialSysfsRoot, err)
	}

	var paths []string
	for _, entry := range entries {
		devicePath := filepath.Join(usbSerialSysfsRoot, entry.Name())
		matched, err := usbSerialMatchesVidPid(devicePath, vendorID, productID)
		if err != nil || !matched {
			continue
		}
		ttyName, err := usbSerialTTYName(devicePath)
		if err != nil {
			continue
		}
		paths = append(paths, filepath.Join("/dev", ttyName))
	}
	return paths, nil
}

// usbSerialMatchesVidPid walks up from a usb-serial-devices entry
// (which is itself a symlink into the owning USB interface) to the
// parent USB device directory and compares its idVendor/idProduct
// attribute files.
func usbSerialMatchesVidPid(devicePath string, vendorID, productID uint16) (bool, error) {
	interfacePath, err := filepath.EvalSymlinks(devicePath)
	if err != nil {
		return false, err
	}
	usbDevicePath := filepath.Dir(interfacePath)

	vid, err := readHexAttribute(filepath.Join(usbDevicePath, "idVendor"))
	if err != nil {
		return false, err
	}
	pid, err := readHexAttribute(filepath.Join(usbDevicePath, "idProduct"))
	if err != nil {
		return false, err
	}
	return vid == vendorID && pid == productID, nil
}

// usbSerialTTYName finds the "ttyUSB*"/"ttyACM*" child directory of a
// usb-serial-devices entry and returns its name.
func usbSerialTTYName(devicePath string) (string, error) {
	target, err := filepath.EvalSymlinks(devicePath)
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(target)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "ttyUSB") || strings.HasPrefix(name, "ttyACM") {
			return name, nil
		}
	}
	return "", fmt.Errorf("serialport: no tty child under %s", target)
}

func readHexAttribute(path string) (uint16, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("serialport: parse %s: %w", path, err)
	}
	return uint16(v), nil
}
