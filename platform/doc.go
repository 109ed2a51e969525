// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platform selects the importer variant and plan stages for a
// deployment target.
//
// The selection is made once, by name or by priority among the platforms
// that detect their hardware, and stays fixed for the life of the display.
// Three platforms are built in:
//
//	stm32mpu             zero-copy import, RGB order, usage gate, usage gated planning
//	stm32mpu-bufferinfo  descriptor import, BGR order, usage gated planning
//	generic              zero-copy import, RGB order, greedy planning
//
// Other targets register themselves from an init function.
package platform
