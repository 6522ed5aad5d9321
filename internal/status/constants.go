// internal/status/constants.go
package status

// Sensor status block layout constants.
// These values define the block layout and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per sensor.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the sensor liveness state.
const SlotHealthCode = 0

// SlotSecondsStale holds how long (in seconds) the sensor has been silent.
const SlotSecondsStale = 1

// ---- RESERVED RANGE ----

// Slots 2-10 are reserved for future use.
const SlotReservedStart = 2
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name always lives at the end of the block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents a boot state: no byte ever received.
const HealthUnknown uint16 = 0

// HealthOK represents a sensor heard from recently.
const HealthOK uint16 = 1

// HealthStale represents a sensor silent past the liveness timeout.
const HealthStale uint16 = 2
