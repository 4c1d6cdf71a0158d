package version

// Version is the current release of the codegen tool.
// It is stamped into the header of every generated source file.
const Version = "0.4.1"
