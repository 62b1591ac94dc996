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

package phpast

// BinaryOp is the spelling of a binary operator.
type BinaryOp string

// OpAdd is the only binary operator that propagates taint.
const OpAdd BinaryOp = "+"

var binaryOps = map[BinaryOp]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true,
	"&&": true, "||": true, "and": true, "or": true, "xor": true,
	"==": true, "!=": true, "<>": true, "===": true, "!==": true,
	"<": true, "<=": true, ">": true, ">=": true, "<=>": true, "??": true,
}

// Valid returns true when op is a PHP binary operator other than concatenation.
func (op BinaryOp) Valid() bool {
	return binaryOps[op]
}

// UnaryOp is the spelling of a unary operator.
type UnaryOp string

const (
	OpNot    UnaryOp = "!"
	OpNeg    UnaryOp = "-"
	OpPlus   UnaryOp = "+"
	OpBitNot UnaryOp = "~"
)

// Valid returns true when op is one of the unary operators.
func (op UnaryOp) Valid() bool {
	switch op {
	case OpNot, OpNeg, OpPlus, OpBitNot:
		return true
	}
	return false
}

// IncDecOp is ++ or --.
type IncDecOp string

const (
	OpInc IncDecOp = "++"
	OpDec IncDecOp = "--"
)

// Valid returns true for ++ and --.
func (op IncDecOp) Valid() bool {
	return op == OpInc || op == OpDec
}

// CastType is the target type of a cast.
type CastType string

const (
	CastInt    CastType = "int"
	CastBool   CastType = "bool"
	CastDouble CastType = "double"
	CastString CastType = "string"
	CastArray  CastType = "array"
	CastObject CastType = "object"
)

// Valid returns true when t is a known cast target.
func (t CastType) Valid() bool {
	switch t {
	case CastInt, CastBool, CastDouble, CastString, CastArray, CastObject:
		return true
	}
	return false
}

// IsScalar returns true for the numeric and boolean targets. A scalar cast cannot carry injected text.
func (t CastType) IsScalar() bool {
	return t == CastInt || t == CastBool || t == CastDouble
}
