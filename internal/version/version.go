// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Headless summary/snapshot/ASCII output, viper config file, pause
// 0.2.0 - Free-fly and tracking cameras, context menu, starfield and axes
// 0.1.0 - Initial release: catalogue loader, wireframe terminal renderer
