// Package entities provides the core value types shared by the bridge packages.
// They carry no engine dependency; engine handles are modelled in ports.
package entities
