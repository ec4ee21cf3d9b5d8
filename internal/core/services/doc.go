// Package services implements the driving port interfaces.
//
// SearchCoordinator owns the search screen state, ViewSync decides when the
// map follows the selection and SettingsService validates configuration.
// Services only talk to the outside world through driven ports.
package services
