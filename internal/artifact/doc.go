// Package artifact builds the deployable war and publishes it to the
// Subversion artifact store.
//
// The store keeps one folder per application under a root URL:
//
//	<root>/<app>/trunk.war
//	<root>/<app>/feature-x.war
//
// Publishing replaces an existing war of the same name by deleting it,
// waiting a settle delay, and importing the new file. The store offers no
// atomic replace, so the delay is a guess at propagation latency rather than
// a guarantee.
package artifact
