// Package shared holds utilities used across internal packages.
package shared
