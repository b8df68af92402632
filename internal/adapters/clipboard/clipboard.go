// Package clipboard implements ports.Clipboard against the OS clipboard.
// On Windows it speaks the native CF_DIB/CF_UNICODETEXT formats directly;
// elsewhere it goes through golang.design/x/clipboard, which transports
// images as PNG.
package clipboard
