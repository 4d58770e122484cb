// Package staging resolves output paths for rendered audio.
//
// Every render writes into a private staging directory next to the project
// file:
//
//	<project directory>/.rendering/<filename>
//
// Resolve creates the directory on demand and is safe to call repeatedly.
// File names are validated so that a name taken from chart data (such as a
// custom sound effect name) can never escape the staging directory.
package staging
