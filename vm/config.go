package vm

import "github.com/wippyai/jni-runtime/types"

// Config holds configuration for VM creation.
type Config struct {
	// Version is the requested JNI version.
	Version types.Version

	// Options are JavaVMOption strings such as "-Xmx512M" or
	// "-Djava.class.path=app.jar".
	Options []string

	// IgnoreUnrecognized lets the VM skip non-standard options it does not know.
	IgnoreUnrecognized bool
}

// DefaultConfig requests JNI 1.8 and ignores unrecognized options.
func DefaultConfig() *Config {
	return &Config{
		Version:            types.Version1_8,
		IgnoreUnrecognized: true,
	}
}

// AttachConfig holds configuration for attaching a thread.
type AttachConfig struct {
	// Version defaults to the VM's version when zero.
	Version types.Version

	// Name is the Java thread name. Empty leaves it to the VM.
	Name string

	// Group is a global reference to a ThreadGroup, or null.
	Group types.Object
}
