// Package process stops the headless Chrome the PDF renderer launches,
// together with the helper processes Chrome spawns.
package process
