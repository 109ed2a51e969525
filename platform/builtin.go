package platform

import (
	"bytes"
	"os"

	"github.com/gogpu/drmhwc/drm"
	"github.com/gogpu/drmhwc/format"
	"github.com/gogpu/drmhwc/gralloc"
	"github.com/gogpu/drmhwc/importer"
	"github.com/gogpu/drmhwc/planner"
)

// Built-in platform names.
const (
	STM32MPU           = "stm32mpu"
	STM32MPUBufferInfo = "stm32mpu-bufferinfo"
	Generic            = "generic"
)

// stm32Allocator is the allocator module the STM32MP1 platforms ship with.
const stm32Allocator = "vivante"

// compatiblePath lists the device tree compatible strings of the machine.
var compatiblePath = "/sys/firmware/devicetree/base/compatible"

func init() {
	Register(STM32MPU, 100, newSTM32MPU, isSTM32MP)
	Register(STM32MPUBufferInfo, 50, newSTM32MPUBufferInfo, isSTM32MP)
	Register(Generic, 10, newGeneric, nil)
}

func newSTM32MPU(dev drm.Device, mod gralloc.Module) (*Platform, error) {
	imp, err := importer.NewZeroCopy(dev, mod,
		importer.WithChannelOrder(format.OrderRGB),
		importer.WithUsageCheck(true),
		importer.WithExpectedModule(stm32Allocator))
	if err != nil {
		return nil, err
	}
	return &Platform{
		Name:     STM32MPU,
		Importer: imp,
		Planner: planner.New(
			planner.WithChannelOrder(format.OrderRGB),
			planner.WithStages(planner.UsageGatedStage{})),
	}, nil
}

func newSTM32MPUBufferInfo(_ drm.Device, mod gralloc.Module) (*Platform, error) {
	imp, err := importer.NewDescriptor(mod,
		importer.WithChannelOrder(format.OrderBGR),
		importer.WithUsageCheck(false),
		importer.WithExpectedModule(stm32Allocator))
	if err != nil {
		return nil, err
	}
	return &Platform{
		Name:     STM32MPUBufferInfo,
		Importer: imp,
		Planner: planner.New(
			planner.WithChannelOrder(format.OrderBGR),
			planner.WithStages(planner.UsageGatedStage{})),
	}, nil
}

func newGeneric(dev drm.Device, mod gralloc.Module) (*Platform, error) {
	imp, err := importer.NewZeroCopy(dev, mod,
		importer.WithChannelOrder(format.OrderRGB),
		importer.WithUsageCheck(false))
	if err != nil {
		return nil, err
	}
	return &Platform{
		Name:     Generic,
		Importer: imp,
		Planner: planner.New(
			planner.WithChannelOrder(format.OrderRGB),
			planner.WithStages(planner.GreedyStage{})),
	}, nil
}

// isSTM32MP reports whether the device tree names an STM32MP1 SoC.
func isSTM32MP() bool {
	compat, err := os.ReadFile(compatiblePath)
	if err != nil {
		return false
	}
	for _, c := range bytes.Split(compat, []byte{0}) {
		if bytes.HasPrefix(c, []byte("st,stm32mp1")) {
			return true
		}
	}
	return false
}
