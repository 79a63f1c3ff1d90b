/*
The package sms decodes raw SMS protocol data units (PDUs) as exchanged with a GSM
modem over its AT command interface, according to:

	GSM 03.40 (SMS Transfer Protocol)
	GSM 03.38 (alphabets and data coding schemes)

The decoder is layered: a bounds-checked byte cursor feeds the semi-octet (BCD)
codec, the address and timestamp decoders, the GSM 7-bit alphabet unpacker, and the
UCS-2 decoder; the dispatcher reads the first octet's TP-MTI bits and routes to the
SMS-DELIVER or SMS-SUBMIT field layout.

Abbreviations:
PDU: Protocol Data Unit
UDH: User Data Header
DCS: Data Coding Scheme

Restrictions:
Reassembly of concatenated messages across PDUs is not part of this package; the
concatenation information of each PDU's user data header is exposed as-is.
SMS-STATUS-REPORT PDUs are not supported.
*/
package sms
