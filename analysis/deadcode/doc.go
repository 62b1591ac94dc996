// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package deadcode finds functions, methods and classes that are declared but never referenced.

The analysis is a name-based heuristic. Declarations and references are reduced to identities:

	name()            free function
	static::name()    static method, of any class
	$object->name()   instance method, of any class
	Name.class        class or interface

Two members with the same name in unrelated classes share one identity, so a reference to either keeps both
alive. The analysis can therefore miss dead code, but never reports a declaration that is referenced somewhere.

The [Collector] is fed by the taint analysis walk, which registers declarations as it enters them and usages as it
meets calls, instantiations and class references.
*/
package deadcode
