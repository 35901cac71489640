// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/recordstream/fault"
)

// ParseConfigurationFile - execute a Lua file and map the table it
// returns onto the structure pointed to by config
func ParseConfigurationFile(fileName string, config interface{}) error {

	// ensure a pointer to a structure was passed
	v := reflect.ValueOf(config)
	if reflect.Ptr != v.Kind() || v.IsNil() || reflect.Struct != v.Elem().Kind() {
		return fault.ErrInvalidStructPointer
	}

	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()

	// create the global "arg" table
	// arg[0] = config file
	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	if err := L.DoFile(fileName); nil != err {
		return errors.Wrapf(err, "execute: %q", fileName)
	}

	table, ok := L.Get(L.GetTop()).(*lua.LTable)
	if !ok {
		return errors.Errorf("configuration: %q did not return a table", fileName)
	}

	mapper := gluamapper.Mapper{
		Option: gluamapper.Option{
			NameFunc: func(s string) string {
				return s
			},
			TagName: "gluamapper",
		},
	}
	if err := mapper.Map(table, config); nil != err {
		return errors.Wrapf(err, "map: %q", fileName)
	}
	return nil
}
