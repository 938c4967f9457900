package types

import "fmt"

// Device is the class of input hardware a frontend can assign to a port with
// retro_set_controller_port_device.
type Device uint32

const (
	DeviceNone     Device = 0
	DeviceJoypad   Device = 1
	DeviceMouse    Device = 2
	DeviceKeyboard Device = 3
	DeviceLightGun Device = 4
	DeviceAnalog   Device = 5
	DevicePointer  Device = 6
)

// DeviceFromWire converts a raw device identifier from the ABI. Unknown
// values are reported so the bridge can ignore the assignment instead of
// guessing.
func DeviceFromWire(v uint32) (Device, bool) {
	if v > uint32(DevicePointer) {
		return DeviceNone, false
	}
	return Device(v), true
}

func (d Device) String() string {
	switch d {
	case DeviceNone:
		return "none"
	case DeviceJoypad:
		return "joypad"
	case DeviceMouse:
		return "mouse"
	case DeviceKeyboard:
		return "keyboard"
	case DeviceLightGun:
		return "lightgun"
	case DeviceAnalog:
		return "analog"
	case DevicePointer:
		return "pointer"
	default:
		return fmt.Sprintf("Device(%d)", uint32(d))
	}
}

// DevicePort identifies one controller port on the emulated system.
type DevicePort uint8

// JoypadButton is a button identifier on the libretro "RetroPad", the
// abstract gamepad every frontend maps physical input onto.
type JoypadButton uint32

const (
	JoypadB      JoypadButton = 0
	JoypadY      JoypadButton = 1
	JoypadSelect JoypadButton = 2
	JoypadStart  JoypadButton = 3
	JoypadUp     JoypadButton = 4
	JoypadDown   JoypadButton = 5
	JoypadLeft   JoypadButton = 6
	JoypadRight  JoypadButton = 7
	JoypadA      JoypadButton = 8
	JoypadX      JoypadButton = 9
	JoypadL1     JoypadButton = 10
	JoypadR1     JoypadButton = 11
	JoypadL2     JoypadButton = 12
	JoypadR2     JoypadButton = 13
	JoypadL3     JoypadButton = 14
	JoypadR3     JoypadButton = 15
)
