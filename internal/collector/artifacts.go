package collector

// Artifact file names inside a workspace directory.
const (
	SystemInfoFile      = "sysinfo.yaml"
	UpdateFile          = "update.txt"
	DiskFile            = "disk.txt"
	MemoryFile          = "memory.txt"
	CPUFile             = "cpu.txt"
	ErrorLogFile        = "syslog-errors.txt"
	SMARTDir            = "smart"
	IntegrityFile       = "integrity.txt"
	IntegrityFailedFile = "integrity-failed.txt"

	// SMARTNoDisksFile marks a run whose SMART step found no disks.
	SMARTNoDisksFile = SMARTDir + "/.none"
)

// UpdateSkippedText is the update transcript saved when the update step
// was skipped.
const UpdateSkippedText = "# update skipped\n"
