// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package recordformat - version 6 record stream wire format
//
// Record, sidecar and signature files are protobuf messages that
// are written incrementally, so the framing is done by hand here
// instead of marshalling whole messages:
//
//   record file:    int32 version
//                   1: hapi_proto_version       SemanticVersion
//                   2: start_object_running_hash HashObject
//                   3: record_stream_items      RecordStreamItem (repeated)
//                   4: end_object_running_hash  HashObject
//                   5: block_number             int64
//                   6: sidecars                 SidecarMetadata (repeated)
//
//   sidecar file:   1: sidecar_records          TransactionSidecarRecord (repeated)
//
//   signature file: byte version
//                   1: file_signature           SignatureObject
//                   2: metadata_signature       SignatureObject
//
// every length-delimited field, whatever the file, goes through
// WriteDelimitedField so the byte layout is defined in one place
package recordformat
