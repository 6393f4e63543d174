package domain

// Step identifies a stage of the strictly linear build pipeline.
type Step uint8

const (
	// StepPreflight verifies the build generator is invocable.
	StepPreflight Step = iota
	// StepPlatform rejects unsupported operating systems.
	StepPlatform
	// StepCheckout clones and bootstraps the package manager when missing.
	StepCheckout
	// StepInstall installs the dependency manifest for the target triplet.
	StepInstall
	// StepIntegrate registers the package manager's integration hooks.
	StepIntegrate
	// StepConfigure generates the native build files.
	StepConfigure
	// StepBuild compiles the extension.
	StepBuild
	// StepPlace locates the compiled binary where the import system expects it.
	StepPlace
)

var stepNames = [...]string{
	StepPreflight: "preflight",
	StepPlatform:  "platform",
	StepCheckout:  "checkout",
	StepInstall:   "install",
	StepIntegrate: "integrate",
	StepConfigure: "configure",
	StepBuild:     "build",
	StepPlace:     "place",
}

// String returns the lowercase name of the step.
func (s Step) String() string {
	if int(s) < len(stepNames) {
		return stepNames[s]
	}
	return "unknown"
}
