// Package notify fans committed notification events out to watchers.
package notify
