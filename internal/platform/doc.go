// Package platform contains OS integration helpers: resolving the user's
// Downloads directory and opening directories in the system file manager
// across desktop and Android.
package platform
