// Package winnow contains the core components of Winnow, a framework for
// partitioned, columnar data processing. This root package defines types which
// are employed during the regular use of the framework, as well as in the
// extension of the framework, and is an excellent overview of Winnow's key
// concepts.
package winnow
