package objconf

// MountOption describes how MountVirtual should treat one virtual
// filesystem: unmounted (zero value), mounted, or mounted with the
// "remount if already mounted" '+' suffix (config.c:450-502 stores this as
// 2 versus true — we spell it out as an enum instead).
type MountOption int

const (
	MountSkip MountOption = iota
	MountOnce
	MountRemount
)

// VirtualMounts records the MountVirtual selection. Applying the actual
// mount(2) syscalls is out of scope for this subsystem (spec.md §1); these
// are merely the switches the core records for cmd/epochd to act on.
type VirtualMounts struct {
	Procfs  MountOption
	Sysfs   MountOption
	Devfs   MountOption
	DevPts  MountOption
	DevShm  MountOption
}

// BootBanner holds the optional greeter text shown before any object is
// sequenced at boot.
type BootBanner struct {
	Text  string
	Color string
	Show  bool
}

// Configuration is the single record holding every piece of global state
// spec.md §3 describes, replacing the original's scattered package-level C
// globals (spec.md §9 "Global mutable state"). It is owned by a *Table and
// mutated only through the subsystem's API.
type Configuration struct {
	CurrentRunlevel string
	Hostname        string
	BootBanner      BootBanner
	VirtualMounts   VirtualMounts

	DisableCAD         bool
	BlankLogOnBoot     bool
	ShellEnabled       bool
	EnableLogging      bool
	AlignStatusReports bool
}

// preservedGlobals is the subset of Configuration that ReloadConfig must
// not let a new file clobber (spec.md §4.7 step 2): these three are
// runtime-user-controlled, not config-file-controlled, once the process is
// live. CurrentRunlevel is preserved too, matching CurRunlevel's lifetime
// as a global that outlives ShutdownConfig (config.c:548): DefaultRunlevel
// is a no-op on reload whenever a runlevel is already running.
type preservedGlobals struct {
	currentRunlevel    string
	enableLogging      bool
	disableCAD         bool
	alignStatusReports bool
}

func (c *Configuration) snapshotPreserved() preservedGlobals {
	return preservedGlobals{
		currentRunlevel:    c.CurrentRunlevel,
		enableLogging:      c.EnableLogging,
		disableCAD:         c.DisableCAD,
		alignStatusReports: c.AlignStatusReports,
	}
}

func (c *Configuration) restorePreserved(p preservedGlobals) {
	if p.currentRunlevel != "" {
		c.CurrentRunlevel = p.currentRunlevel
	}
	c.EnableLogging = p.enableLogging
	c.DisableCAD = p.disableCAD
	c.AlignStatusReports = p.alignStatusReports
}
